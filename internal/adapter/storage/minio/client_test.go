package minio

import "testing"

func TestEndpointURL(t *testing.T) {
	if got := EndpointURL("localhost:9000", false); got != "http://localhost:9000" {
		t.Errorf("unexpected plain endpoint %q", got)
	}
	if got := EndpointURL("s3.example.com", true); got != "https://s3.example.com" {
		t.Errorf("unexpected ssl endpoint %q", got)
	}
}
