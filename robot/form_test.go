package robot

import "testing"

func TestFormParamList_SingleValue(t *testing.T) {
	v := FormParamList("server", []string{"321"})
	if got := v.Encode(); got != "server%5B%5D=321" {
		t.Fatalf("got %q", got)
	}
}

func TestFormParamList_MultipleValues(t *testing.T) {
	v := FormParamList("server", []string{"321", "654"})
	if got := v.Get("server[0]"); got != "321" {
		t.Fatalf("server[0] = %q", got)
	}
	if got := v.Get("server[1]"); got != "654" {
		t.Fatalf("server[1] = %q", got)
	}
	if _, ok := v["server[]"]; ok {
		t.Fatalf("unexpected server[] key for multiple values")
	}
}

func TestFormParamList_Empty(t *testing.T) {
	if v := FormParamList("server", nil); len(v) != 0 {
		t.Fatalf("expected empty values, got %v", v)
	}
}
