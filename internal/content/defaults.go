package content

import (
	"strings"

	"github.com/ferrogaz/website/internal/model"
)

// SiteInfo carries the site-wide values substituted into default content.
type SiteInfo struct {
	CompanyName string
	Email       string
	Phone       string
	Address     string
}

// Registry holds the compiled default content for every page and language,
// with site placeholders already substituted. Built once at startup.
type Registry struct {
	site SiteInfo
	// pages[slug][language][sectionKey] = default content map
	pages map[string]map[string]map[string]map[string]any
	// titles[slug][language] = page title
	titles map[string]map[string]string
}

// NewRegistry compiles the default content set, substituting
// {{companyName}}, {{email}}, {{phone}} and {{address}} with site values.
func NewRegistry(site SiteInfo) *Registry {
	r := &Registry{
		site:   site,
		pages:  make(map[string]map[string]map[string]map[string]any),
		titles: make(map[string]map[string]string),
	}
	for slug, byLang := range rawDefaults {
		r.pages[slug] = make(map[string]map[string]map[string]any, len(byLang))
		for lang, sections := range byLang {
			compiled := make(map[string]map[string]any, len(sections))
			for key, content := range sections {
				compiled[key] = r.substituteMap(content)
			}
			r.pages[slug][lang] = compiled
		}
	}
	for slug, byLang := range rawTitles {
		r.titles[slug] = make(map[string]string, len(byLang))
		for lang, title := range byLang {
			r.titles[slug][lang] = r.substitute(title)
		}
	}
	return r
}

// Defaults returns a deep copy of the default content for one section, so
// callers can merge overrides into it without mutating the registry.
// Returns nil when the page or section is unknown.
func (r *Registry) Defaults(slug, sectionKey, language string) map[string]any {
	byLang, ok := r.pages[slug]
	if !ok {
		return nil
	}
	sections, ok := byLang[model.NormalizeLanguage(language)]
	if !ok {
		sections = byLang[model.DefaultLanguage]
	}
	content, ok := sections[sectionKey]
	if !ok {
		return nil
	}
	return deepCopyMap(content)
}

// PageTitle returns the default title for a page in the given language.
func (r *Registry) PageTitle(slug, language string) string {
	byLang, ok := r.titles[slug]
	if !ok {
		return r.site.CompanyName
	}
	if title, ok := byLang[model.NormalizeLanguage(language)]; ok {
		return title
	}
	return byLang[model.DefaultLanguage]
}

func (r *Registry) substitute(s string) string {
	repl := strings.NewReplacer(
		"{{companyName}}", r.site.CompanyName,
		"{{email}}", r.site.Email,
		"{{phone}}", r.site.Phone,
		"{{address}}", r.site.Address,
	)
	return repl.Replace(s)
}

func (r *Registry) substituteMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = r.substituteValue(v)
	}
	return out
}

func (r *Registry) substituteValue(v any) any {
	switch val := v.(type) {
	case string:
		return r.substitute(val)
	case map[string]any:
		return r.substituteMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = r.substituteValue(item)
		}
		return out
	default:
		return v
	}
}

func deepCopyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = deepCopyValue(v)
	}
	return out
}

func deepCopyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return deepCopyMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = deepCopyValue(item)
		}
		return out
	default:
		return v
	}
}

// rawTitles holds default page titles before placeholder substitution.
var rawTitles = map[string]map[string]string{
	"/": {
		model.LanguageTR: "{{companyName}} | Endüstriyel ve Medikal Gaz Çözümleri",
		model.LanguageEN: "{{companyName}} | Industrial and Medical Gas Solutions",
	},
	"/hakkimizda": {
		model.LanguageTR: "Hakkımızda | {{companyName}}",
		model.LanguageEN: "About Us | {{companyName}}",
	},
	"/galeri": {
		model.LanguageTR: "Galeri | {{companyName}}",
		model.LanguageEN: "Gallery | {{companyName}}",
	},
	"/urunler": {
		model.LanguageTR: "Ürünler | {{companyName}}",
		model.LanguageEN: "Products | {{companyName}}",
	},
	"/iletisim": {
		model.LanguageTR: "İletişim | {{companyName}}",
		model.LanguageEN: "Contact | {{companyName}}",
	},
	"/gizlilik-politikasi": {
		model.LanguageTR: "Gizlilik Politikası | {{companyName}}",
		model.LanguageEN: "Privacy Policy | {{companyName}}",
	},
	"/cerez-politikasi": {
		model.LanguageTR: "Çerez Politikası | {{companyName}}",
		model.LanguageEN: "Cookie Policy | {{companyName}}",
	},
	"/kvkk": {
		model.LanguageTR: "KVKK Aydınlatma Metni | {{companyName}}",
		model.LanguageEN: "Personal Data Protection Notice | {{companyName}}",
	},
}

// rawDefaults holds default section content before placeholder substitution.
// Structure: slug -> language -> sectionKey -> content map.
var rawDefaults = map[string]map[string]map[string]map[string]any{
	"/": {
		model.LanguageTR: {
			"hero": {
				"title":    "{{companyName}}",
				"subtitle": "Endüstriyel ve medikal gazlarda güvenilir tedarik ortağınız",
				"image":    "/static/img/hero.jpg",
				"ctaText":  "Teklif Alın",
			},
			"services": {
				"title": "Hizmetlerimiz",
				"items": []any{
					map[string]any{
						"name":        "Endüstriyel Gazlar",
						"description": "Oksijen, azot, argon ve karbondioksit tedariki",
						"icon":        "flask",
					},
					map[string]any{
						"name":        "Medikal Gazlar",
						"description": "Hastane ve klinikler için medikal oksijen çözümleri",
						"icon":        "heart-pulse",
					},
					map[string]any{
						"name":        "Tüp Dolumu",
						"description": "Her boyutta tüp için hızlı ve güvenli dolum hizmeti",
						"icon":        "cylinder",
					},
				},
			},
			"about": {
				"title": "Neden {{companyName}}?",
				"text":  "Yılların tecrübesiyle sanayi ve sağlık sektörüne kaliteli gaz tedariki sağlıyoruz. Sorularınız için bize {{email}} adresinden veya {{phone}} numarasından ulaşabilirsiniz.",
			},
		},
		model.LanguageEN: {
			"hero": {
				"title":    "{{companyName}}",
				"subtitle": "Your reliable partner for industrial and medical gases",
				"image":    "/static/img/hero.jpg",
				"ctaText":  "Get a Quote",
			},
			"services": {
				"title": "Our Services",
				"items": []any{
					map[string]any{
						"name":        "Industrial Gases",
						"description": "Supply of oxygen, nitrogen, argon and carbon dioxide",
						"icon":        "flask",
					},
					map[string]any{
						"name":        "Medical Gases",
						"description": "Medical oxygen solutions for hospitals and clinics",
						"icon":        "heart-pulse",
					},
					map[string]any{
						"name":        "Cylinder Filling",
						"description": "Fast and safe filling service for cylinders of all sizes",
						"icon":        "cylinder",
					},
				},
			},
			"about": {
				"title": "Why {{companyName}}?",
				"text":  "With years of experience we deliver quality gas supply to industry and healthcare. Reach us at {{email}} or {{phone}} with any questions.",
			},
		},
	},
	"/hakkimizda": {
		model.LanguageTR: {
			"header": {
				"title":    "Hakkımızda",
				"subtitle": "{{companyName}} kimdir?",
			},
			"story": {
				"title": "Hikayemiz",
				"text":  "{{companyName}}, endüstriyel ve medikal gaz sektöründe müşterilerine güvenilir tedarik sunmak amacıyla kurulmuştur. Tesisimiz {{address}} adresinde hizmet vermektedir.",
				"image": "/static/img/tesis.jpg",
			},
			"values": {
				"title": "Değerlerimiz",
				"items": []any{
					map[string]any{"name": "Güvenlik", "description": "Tüm süreçlerde iş güvenliği önceliğimizdir", "icon": "shield"},
					map[string]any{"name": "Kalite", "description": "Standartlara uygun, izlenebilir üretim", "icon": "award"},
					map[string]any{"name": "Süreklilik", "description": "Kesintisiz tedarik garantisi", "icon": "refresh"},
				},
			},
		},
		model.LanguageEN: {
			"header": {
				"title":    "About Us",
				"subtitle": "Who is {{companyName}}?",
			},
			"story": {
				"title": "Our Story",
				"text":  "{{companyName}} was founded to provide reliable supply to customers in the industrial and medical gas sector. Our facility operates at {{address}}.",
				"image": "/static/img/tesis.jpg",
			},
			"values": {
				"title": "Our Values",
				"items": []any{
					map[string]any{"name": "Safety", "description": "Occupational safety comes first in every process", "icon": "shield"},
					map[string]any{"name": "Quality", "description": "Traceable production to standard", "icon": "award"},
					map[string]any{"name": "Continuity", "description": "Guaranteed uninterrupted supply", "icon": "refresh"},
				},
			},
		},
	},
	"/galeri": {
		model.LanguageTR: {
			"header": {
				"title":    "Galeri",
				"subtitle": "Tesisimizden ve çalışmalarımızdan kareler",
			},
			"images": {
				"images": []any{},
			},
		},
		model.LanguageEN: {
			"header": {
				"title":    "Gallery",
				"subtitle": "Scenes from our facility and operations",
			},
			"images": {
				"images": []any{},
			},
		},
	},
	"/urunler": {
		model.LanguageTR: {
			"header": {
				"title":    "Ürünlerimiz",
				"subtitle": "Endüstriyel ve medikal gaz ürün yelpazemiz",
			},
			"products": {
				"items": []any{
					map[string]any{"name": "Oksijen", "description": "Endüstriyel ve medikal kullanım için tüplü oksijen", "icon": "o2"},
					map[string]any{"name": "Azot", "description": "Gıda ve sanayi uygulamaları için azot", "icon": "n2"},
					map[string]any{"name": "Argon", "description": "Kaynak uygulamaları için yüksek saflıkta argon", "icon": "ar"},
					map[string]any{"name": "Karbondioksit", "description": "İçecek ve kaynak sektörü için karbondioksit", "icon": "co2"},
					map[string]any{"name": "Asetilen", "description": "Kesme ve kaynak işleri için asetilen", "icon": "c2h2"},
					map[string]any{"name": "Karışım Gazlar", "description": "Talebe özel hazırlanan gaz karışımları", "icon": "mix"},
				},
			},
		},
		model.LanguageEN: {
			"header": {
				"title":    "Our Products",
				"subtitle": "Our range of industrial and medical gases",
			},
			"products": {
				"items": []any{
					map[string]any{"name": "Oxygen", "description": "Cylinder oxygen for industrial and medical use", "icon": "o2"},
					map[string]any{"name": "Nitrogen", "description": "Nitrogen for food and industrial applications", "icon": "n2"},
					map[string]any{"name": "Argon", "description": "High purity argon for welding applications", "icon": "ar"},
					map[string]any{"name": "Carbon Dioxide", "description": "Carbon dioxide for beverage and welding industries", "icon": "co2"},
					map[string]any{"name": "Acetylene", "description": "Acetylene for cutting and welding work", "icon": "c2h2"},
					map[string]any{"name": "Gas Mixtures", "description": "Custom gas mixtures prepared on demand", "icon": "mix"},
				},
			},
		},
	},
	"/iletisim": {
		model.LanguageTR: {
			"header": {
				"title":    "İletişim",
				"subtitle": "Bize ulaşın",
			},
			"info": {
				"email":   "{{email}}",
				"phone":   "{{phone}}",
				"address": "{{address}}",
			},
		},
		model.LanguageEN: {
			"header": {
				"title":    "Contact",
				"subtitle": "Get in touch",
			},
			"info": {
				"email":   "{{email}}",
				"phone":   "{{phone}}",
				"address": "{{address}}",
			},
		},
	},
	"/gizlilik-politikasi": {
		model.LanguageTR: {
			"header": {
				"title": "Gizlilik Politikası",
			},
			"body": {
				"body": "## Gizlilik Politikası\n\n{{companyName}} olarak kişisel verilerinizin gizliliğine önem veriyoruz. Bu politika, web sitemizi ziyaret ettiğinizde hangi verilerin toplandığını ve nasıl kullanıldığını açıklar.\n\nSorularınız için {{email}} adresinden bize ulaşabilirsiniz.",
			},
		},
		model.LanguageEN: {
			"header": {
				"title": "Privacy Policy",
			},
			"body": {
				"body": "## Privacy Policy\n\nAt {{companyName}} we value the privacy of your personal data. This policy explains which data is collected when you visit our website and how it is used.\n\nContact us at {{email}} with any questions.",
			},
		},
	},
	"/cerez-politikasi": {
		model.LanguageTR: {
			"header": {
				"title": "Çerez Politikası",
			},
			"cookieTypes": {
				"items": []any{
					map[string]any{"name": "Zorunlu Çerezler", "description": "Sitenin çalışması için gerekli çerezler. Devre dışı bırakılamaz."},
					map[string]any{"name": "Analitik Çerezler", "description": "Ziyaretçi istatistikleri için kullanılan çerezler."},
					map[string]any{"name": "Pazarlama Çerezleri", "description": "Kişiselleştirilmiş içerik için kullanılan çerezler."},
				},
			},
			"body": {
				"body": "## Çerez Politikası\n\n{{companyName}} web sitesi, deneyiminizi iyileştirmek için çerezler kullanır. Çerez tercihlerinizi dilediğiniz zaman güncelleyebilirsiniz.",
			},
		},
		model.LanguageEN: {
			"header": {
				"title": "Cookie Policy",
			},
			"cookieTypes": {
				"items": []any{
					map[string]any{"name": "Necessary Cookies", "description": "Cookies required for the site to function. Cannot be disabled."},
					map[string]any{"name": "Analytics Cookies", "description": "Cookies used for visitor statistics."},
					map[string]any{"name": "Marketing Cookies", "description": "Cookies used for personalised content."},
				},
			},
			"body": {
				"body": "## Cookie Policy\n\nThe {{companyName}} website uses cookies to improve your experience. You can update your cookie preferences at any time.",
			},
		},
	},
	"/kvkk": {
		model.LanguageTR: {
			"header": {
				"title": "KVKK Aydınlatma Metni",
			},
			"body": {
				"body": "## KVKK Aydınlatma Metni\n\n6698 sayılı Kişisel Verilerin Korunması Kanunu kapsamında, {{companyName}} veri sorumlusu sıfatıyla kişisel verilerinizi işlemektedir.\n\nVeri sorumlusu iletişim: {{email}} / {{phone}}\nAdres: {{address}}",
			},
		},
		model.LanguageEN: {
			"header": {
				"title": "Personal Data Protection Notice",
			},
			"body": {
				"body": "## Personal Data Protection Notice\n\nUnder Turkish Law No. 6698 on the Protection of Personal Data, {{companyName}} processes your personal data as data controller.\n\nData controller contact: {{email}} / {{phone}}\nAddress: {{address}}",
			},
		},
	},
}
