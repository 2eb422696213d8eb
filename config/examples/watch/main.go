package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/elasticjava/community.hrobot/config"
)

func main() {
	dir, err := os.MkdirTemp("", "hrobot-config")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "hrobot.yaml")
	if err := os.WriteFile(path, []byte("user: \"#ws+demo\"\npassword: old\n"), 0o600); err != nil {
		panic(err)
	}

	cfg, err := config.LoadRobot(path)
	if err != nil {
		panic(err)
	}
	cfg.OnChange(func(old, new config.Robot) {
		fmt.Printf("credentials rotated: user=%s\n", new.User)
	})

	fmt.Printf("user=%s base_url=%s\n", cfg.Get().User, cfg.Get().BaseURL)

	if err := os.WriteFile(path, []byte("user: \"#ws+demo\"\npassword: rotated\n"), 0o600); err != nil {
		panic(err)
	}
	time.Sleep(500 * time.Millisecond)
}
