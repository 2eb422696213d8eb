// Command hrobot is a thin CLI over the Robot webservice client. It owns
// everything the client treats as a collaborator concern: credential
// loading, logging, throttling and rendering of failures.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
