package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
)

type fakeService struct {
	name string
	err  error
}

func (f *fakeService) Name() string { return f.name }

func (f *fakeService) Run(ctx context.Context) error {
	if f.err != nil {
		return f.err
	}
	<-ctx.Done()
	return nil
}

func TestGroup_StopsOnCancel(t *testing.T) {
	g := Group{&fakeService{name: "a"}, &fakeService{name: "b"}}

	ctx, cancelFn := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancelFn()
	}()

	if err := g.Run(ctx); err != nil {
		t.Errorf("expected clean shutdown, got %v", err)
	}
}

func TestGroup_FailureCancelsSiblings(t *testing.T) {
	g := Group{
		&fakeService{name: "healthy"},
		&fakeService{name: "broken", err: fmt.Errorf("boom")},
	}

	done := make(chan error, 1)
	go func() {
		done <- g.Run(context.Background())
	}()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected aggregated error")
		}
		if !strings.Contains(err.Error(), "broken: boom") {
			t.Errorf("expected failing service name in error, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("group did not stop after service failure")
	}
}
