package assets

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestRobotsChecker(t *testing.T) {
	var robotsFetches atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		robotsFetches.Add(1)
		fmt.Fprint(w, "User-agent: *\nDisallow: /private/\n")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	checker := NewRobotsChecker("testbot", 5*time.Second)
	ctx := context.Background()

	if !checker.IsAllowed(ctx, srv.URL+"/images/chart.png") {
		t.Error("allowed path reported as blocked")
	}
	if checker.IsAllowed(ctx, srv.URL+"/private/chart.png") {
		t.Error("disallowed path reported as fetchable")
	}
	if got := robotsFetches.Load(); got != 1 {
		t.Errorf("robots.txt fetched %d times for one host, want 1", got)
	}

	if checker.IsAllowed(ctx, "not a url at all\x00") {
		t.Error("unparsable URL reported as fetchable")
	}
}

func TestRobotsChecker_UnreachableHostAllows(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	checker := NewRobotsChecker("testbot", 100*time.Millisecond)
	if !checker.IsAllowed(context.Background(), url+"/chart.png") {
		t.Error("unreachable robots.txt must not block the download")
	}
}
