package dto

import "testing"

func TestNotifyRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		event   string
		req     NotifyRequest
		wantErr []string
	}{
		{name: "download ok", event: EventDownload, req: NotifyRequest{Name: "Show - S04E02"}},
		{name: "download missing name", event: EventDownload, req: NotifyRequest{Name: "  "}, wantErr: []string{"name"}},
		{name: "subtitle missing both", event: EventSubtitle, wantErr: []string{"name", "lang"}},
		{name: "login bad ip", event: EventLogin, req: NotifyRequest{IP: "nope"}, wantErr: []string{"ip"}},
		{name: "login ipv6", event: EventLogin, req: NotifyRequest{IP: "::1"}},
		{name: "update needs nothing", event: EventUpdate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.req.Validate(tt.event)
			if len(errs) != len(tt.wantErr) {
				t.Fatalf("Expected %d errors, got %v", len(tt.wantErr), errs)
			}
			for i, field := range tt.wantErr {
				if errs[i].Field != field {
					t.Errorf("Expected error on %s, got %s", field, errs[i].Field)
				}
			}
		})
	}
}

func TestKnownEvent(t *testing.T) {
	for _, e := range []string{EventSnatch, EventDownload, EventSubtitle, EventUpdate, EventLogin} {
		if !KnownEvent(e) {
			t.Errorf("Expected %s to be known", e)
		}
	}
	if KnownEvent("test") {
		t.Error("Expected test to be handled by its own route")
	}
}

func TestToResponse(t *testing.T) {
	errs := []ValidationError{{Field: "name", Message: "is required"}, {Field: "lang", Message: "is required"}}
	if got := ToResponse(errs); got != "name: is required; lang: is required" {
		t.Errorf("Unexpected response %q", got)
	}
	if m := ToMap(errs); m["lang"] != "is required" {
		t.Errorf("Unexpected map %v", m)
	}
}
