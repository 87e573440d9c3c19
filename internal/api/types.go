package api

// Profile is the current user as returned by /mypage/profile
type Profile struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	RealName     string `json:"realName,omitempty"`
	Birthdate    string `json:"birthdate,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// DisplayName falls back from name to username to a generic label
func (p *Profile) DisplayName() string {
	switch {
	case p == nil:
		return ""
	case p.Name != "":
		return p.Name
	case p.Username != "":
		return p.Username
	}
	return "사용자"
}

// LoginResponse is returned by password and kakao login
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Name        string `json:"name"`
	Username    string `json:"username"`
}

// SearchFilters narrows a pill search. Empty fields are omitted.
type SearchFilters struct {
	Keyword    string `json:"keyword,omitempty" yaml:"keyword,omitempty"`
	Shape      string `json:"drug_shape,omitempty" yaml:"shape,omitempty"`
	Color      string `json:"color_class,omitempty" yaml:"color,omitempty"`
	PrintFront string `json:"print_front,omitempty" yaml:"print_front,omitempty"`
	PrintBack  string `json:"print_back,omitempty" yaml:"print_back,omitempty"`
	EntpName   string `json:"entp_name,omitempty" yaml:"entp_name,omitempty"`
	ClassNo    string `json:"class_no,omitempty" yaml:"class_no,omitempty"`
	Sort       string `json:"sort,omitempty" yaml:"sort,omitempty"`
}

// IsZero reports whether no filter is set
func (f SearchFilters) IsZero() bool {
	return f == SearchFilters{}
}

// Pill is a search result row
type Pill struct {
	ID          int    `json:"id"`
	ItemSeq     string `json:"item_seq"`
	ItemName    string `json:"item_name"`
	EntpName    string `json:"entp_name"`
	DrugShape   string `json:"drug_shape,omitempty"`
	ColorClass1 string `json:"color_class1,omitempty"`
	ColorClass2 string `json:"color_class2,omitempty"`
	ItemImage   string `json:"item_image,omitempty"`
	PrintFront  string `json:"print_front,omitempty"`
	PrintBack   string `json:"print_back,omitempty"`
	Efficacy    string `json:"efcy_qesitm,omitempty"`
	UseMethod   string `json:"use_method_qesitm,omitempty"`
	IsLiked     bool   `json:"is_liked,omitempty"`
}

// PillSearchResponse is a page of search results
type PillSearchResponse struct {
	Keyword  string `json:"keyword"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Total    int    `json:"total"`
	Items    []Pill `json:"items"`
}

// Community board categories
const (
	CategoryCombo  = "combo"
	CategoryReview = "review"
	CategoryQnA    = "qna"
)

// Categories lists the board tabs in display order
var Categories = []string{CategoryCombo, CategoryReview, CategoryQnA}

// Post is a community board post
type Post struct {
	ID           int    `json:"id"`
	Category     string `json:"category"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	Username     string `json:"username"`
	CreatedAt    string `json:"created_at"`
	LikeCount    int    `json:"like_count"`
	IsLiked      bool   `json:"is_liked,omitempty"`
	CommentCount int    `json:"comment_count"`
	ImageURL     string `json:"image_url,omitempty"`
}

// Comment is a reply under a post
type Comment struct {
	ID        int    `json:"id"`
	UserID    int    `json:"user_id"`
	Username  string `json:"username"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	LikeCount int    `json:"like_count"`
}

// LikeState is the result of a like toggle
type LikeState struct {
	LikeCount int  `json:"like_count"`
	IsLiked   bool `json:"is_liked"`
}

// HistoryItem is one entry of the user's search history
type HistoryItem struct {
	ID        int    `json:"id"`
	Keyword   string `json:"keyword"`
	CreatedAt string `json:"created_at"`
}

// MyPage bundles everything the my page screen shows
type MyPage struct {
	Profile *Profile
	History []HistoryItem
	Posts   []Post
	Scraps  []Pill
}

// AdminStats is the admin console summary
type AdminStats struct {
	UserCount int `json:"user_count"`
	PostCount int `json:"post_count"`
}

type itemsEnvelope[T any] struct {
	Items []T `json:"items"`
}

type errorBody struct {
	Detail any `json:"detail"`
}
