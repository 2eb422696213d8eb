package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"time"

	"github.com/elasticjava/community.hrobot/robot"
)

func main() {
	var n int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&n, 1) < 3 {
			_, _ = io.WriteString(w, `{"firewall": {"status": "in process"}}`)
			return
		}
		_, _ = io.WriteString(w, `{"firewall": {"status": "active"}}`)
	}))
	defer srv.Close()

	client, err := robot.New(
		robot.WithBaseURL(srv.URL),
		robot.WithCredentials("#ws+user", "password"),
	)
	if err != nil {
		panic(err)
	}

	res, err := client.Poll(context.Background(), "/firewall/1.2.3.4",
		func(res *robot.Result) bool {
			if res == nil {
				return false
			}
			fw, _ := res.Object()["firewall"].(map[string]any)
			return fw != nil && fw["status"] != "in process"
		},
		robot.WithCheckDelay(100*time.Millisecond),
		robot.WithCheckTimeout(5*time.Second),
	)
	if err != nil {
		panic(err)
	}

	fw := res.Object()["firewall"].(map[string]any)
	fmt.Printf("attempts=%d status=%v\n", atomic.LoadInt32(&n), fw["status"])
}
