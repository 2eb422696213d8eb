package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/elasticjava/community.hrobot/robot"
)

func main() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"server": {"server_number": 321, "status": "ready"}}`)
	}))
	defer srv.Close()

	client, err := robot.New(
		robot.WithBaseURL(srv.URL),
		robot.WithCredentials("#ws+user", "password"),
	)
	if err != nil {
		panic(err)
	}

	res, err := client.Fetch(context.Background(), "/server/321")
	if err != nil {
		panic(err)
	}

	var out struct {
		Server struct {
			ServerNumber int    `json:"server_number"`
			Status       string `json:"status"`
		} `json:"server"`
	}
	if err := res.Decode(&out); err != nil {
		panic(err)
	}
	fmt.Printf("server=%d status=%s\n", out.Server.ServerNumber, out.Server.Status)
}
