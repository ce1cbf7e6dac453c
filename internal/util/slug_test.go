package util

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"Oksijen Tüpü", "oksijen-tupu"},
		{"Çerez Politikası", "cerez-politikasi"},
		{"Gizlilik  Politikası", "gizlilik-politikasi"},
		{"IŞIK ve GÖLGE", "isik-ve-golge"},
		{"şğıöüç", "sgiouc"},
		{"--zaten--tire--", "zaten-tire"},
		{"", ""},
		{"123 Sayılı Belge", "123-sayili-belge"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsValidSlug(t *testing.T) {
	valid := []string{"abc", "a-b-c", "tup-dolumu-2024"}
	for _, s := range valid {
		if !IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = false, want true", s)
		}
	}
	invalid := []string{"", "-abc", "abc-", "a--b", "Büyük", "boş luk"}
	for _, s := range invalid {
		if IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = true, want false", s)
		}
	}
}

func TestSafeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Tüp Dolum Tesisi.JPG", "tup-dolum-tesisi.jpg"},
		{"foto.png", "foto.png"},
		{"../../etc/passwd", "passwd"},
		{"çğş.pdf", "cgs.pdf"},
		{".gitignore", "dosya.gitignore"},
	}
	for _, tt := range tests {
		if got := SafeFilename(tt.in); got != tt.want {
			t.Errorf("SafeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
