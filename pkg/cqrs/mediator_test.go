package cqrs

import (
	"context"
	"strings"
	"testing"
)

type ping struct{ Msg string }
type pong struct{ Msg string }

func TestSendDispatchesToRegisteredHandler(t *testing.T) {
	m := New()
	err := Register(m, func(_ context.Context, req ping) (pong, error) {
		return pong{Msg: req.Msg + " handled"}, nil
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	res, err := Send[ping, pong](context.Background(), m, ping{Msg: "hello"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if res.Msg != "hello handled" {
		t.Fatalf("res = %q", res.Msg)
	}
}

func TestRegisterRejectsDuplicate(t *testing.T) {
	m := New()
	h := func(_ context.Context, req ping) (pong, error) { return pong{}, nil }
	if err := Register(m, h); err != nil {
		t.Fatalf("first register: %v", err)
	}
	err := Register(m, h)
	if err == nil {
		t.Fatal("duplicate registration should fail")
	}
	if !strings.Contains(err.Error(), "already registered") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRegisterRejectsNilHandler(t *testing.T) {
	m := New()
	if err := Register[ping, pong](m, nil); err == nil {
		t.Fatal("nil handler should be rejected")
	}
}

func TestSendWithoutHandlerFails(t *testing.T) {
	m := New()
	_, err := Send[ping, pong](context.Background(), m, ping{})
	if err == nil {
		t.Fatal("send without handler should fail")
	}
	if !strings.Contains(err.Error(), "no handler registered") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMustRegisterPanicsOnDuplicate(t *testing.T) {
	m := New()
	h := func(_ context.Context, req ping) (pong, error) { return pong{}, nil }
	MustRegister(m, h)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	MustRegister(m, h)
}
