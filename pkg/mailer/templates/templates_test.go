package templates

import (
	"strings"
	"testing"
)

func TestRenderWelcome(t *testing.T) {
	data := ToMap(NewBaseEmailData(Brand{AppName: "courseitda", AppURL: "https://app.example"}, "<Mina>", "mina@example.com"))
	subject, text, html, err := Render(Welcome, data)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if subject != "Welcome to courseitda, <Mina>" {
		t.Errorf("subject = %q", subject)
	}
	if !strings.Contains(text, "mina@example.com") || !strings.Contains(text, "https://app.example") {
		t.Errorf("text missing fields: %q", text)
	}
	if !strings.Contains(html, "&lt;Mina&gt;") {
		t.Errorf("html not escaped: %q", html)
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	if _, _, _, err := Render("nope", nil); err == nil {
		t.Fatal("expected error for unknown template")
	}
}

func TestBrandDefaultsOmitsRecipient(t *testing.T) {
	m := BrandDefaults(Brand{AppName: "courseitda", SupportURL: "https://help"})
	if _, ok := m["Email"]; ok {
		t.Error("recipient fields must not be defaults")
	}
	if m["AppName"] != "courseitda" || m["SupportURL"] != "https://help" {
		t.Errorf("unexpected defaults %v", m)
	}
}
