package signal

import "testing"

func TestPublishOrderAndUnsubscribe(t *testing.T) {
	bus := NewBus()
	var got []string

	unsubA := bus.Subscribe("evt", func(p any) { got = append(got, "a:"+p.(string)) })
	bus.Subscribe("evt", func(p any) { got = append(got, "b:"+p.(string)) })
	bus.Subscribe("other", func(p any) { got = append(got, "other") })

	if n := bus.Publish("evt", "1"); n != 2 {
		t.Fatalf("expected 2 handlers, got %d", n)
	}
	unsubA()
	unsubA()
	bus.Publish("evt", "2")

	want := []string{"a:1", "b:1", "b:2"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("delivery %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestGoSearch(t *testing.T) {
	bus := NewBus()
	var kw string
	bus.Subscribe(EventGoSearch, func(p any) {
		if s, ok := p.(SearchSignal); ok {
			kw = s.Keyword
		}
	})
	bus.GoSearch("타이레놀")
	if kw != "타이레놀" {
		t.Errorf("expected keyword 타이레놀, got %q", kw)
	}
	if n := bus.Publish("nobody", nil); n != 0 {
		t.Errorf("expected no handlers, got %d", n)
	}
}
