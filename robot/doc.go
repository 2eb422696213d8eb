// Package robot is a client for the Hetzner Robot webservice
// (https://robot-ws.your-server.de):
// - basic-auth JSON requests with base URL + default headers
// - uniform decoding of the provider's structured error payload
// - poll-until-done loop with a bounded wall-clock budget
// - error type carrying kind, URL, status and the decoded provider error
// - hook points for logging/metrics/throttling without hard dependencies
package robot
