// Package content implements page content resolution: compiled default
// content per page and language, per-section field schemas driving the
// dashboard editor, and the resolver that merges stored overrides over
// defaults field by field.
package content

// Field types understood by the dashboard editor.
const (
	FieldTypeText     = "text"
	FieldTypeTextarea = "textarea"
	FieldTypeImage    = "image"
	FieldTypeImages   = "images"
	FieldTypeItems    = "items"
	FieldTypeIcon     = "icon"
)

// Field describes a single editable value within a section.
type Field struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

// Section describes a named region of a page. Title is the label shown in
// the editor, not page copy.
type Section struct {
	Key    string  `json:"key"`
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// PageSchema describes the editable structure of one page.
type PageSchema struct {
	Slug     string    `json:"slug"`
	Sections []Section `json:"sections"`
}

// SectionByKey returns the schema for one section of the page.
func (p PageSchema) SectionByKey(key string) (Section, bool) {
	for _, s := range p.Sections {
		if s.Key == key {
			return s, true
		}
	}
	return Section{}, false
}

// pageSchemas is the fixed set of editable pages. Pages are compiled in;
// adding a page is a code change, matching the static site structure.
var pageSchemas = map[string]PageSchema{
	"/": {
		Slug: "/",
		Sections: []Section{
			{Key: "hero", Title: "Hero", Fields: []Field{
				{Key: "title", Label: "Başlık", Type: FieldTypeText},
				{Key: "subtitle", Label: "Alt Başlık", Type: FieldTypeText},
				{Key: "image", Label: "Görsel", Type: FieldTypeImage},
				{Key: "ctaText", Label: "Buton Metni", Type: FieldTypeText},
			}},
			{Key: "services", Title: "Hizmetler", Fields: []Field{
				{Key: "title", Label: "Başlık", Type: FieldTypeText},
				{Key: "items", Label: "Hizmetler", Type: FieldTypeItems},
			}},
			{Key: "about", Title: "Hakkımızda Özeti", Fields: []Field{
				{Key: "title", Label: "Başlık", Type: FieldTypeText},
				{Key: "text", Label: "Metin", Type: FieldTypeTextarea},
			}},
		},
	},
	"/hakkimizda": {
		Slug: "/hakkimizda",
		Sections: []Section{
			{Key: "header", Title: "Sayfa Başlığı", Fields: []Field{
				{Key: "title", Label: "Başlık", Type: FieldTypeText},
				{Key: "subtitle", Label: "Alt Başlık", Type: FieldTypeText},
			}},
			{Key: "story", Title: "Hikayemiz", Fields: []Field{
				{Key: "title", Label: "Başlık", Type: FieldTypeText},
				{Key: "text", Label: "Metin", Type: FieldTypeTextarea},
				{Key: "image", Label: "Görsel", Type: FieldTypeImage},
			}},
			{Key: "values", Title: "Değerlerimiz", Fields: []Field{
				{Key: "title", Label: "Başlık", Type: FieldTypeText},
				{Key: "items", Label: "Değerler", Type: FieldTypeItems},
			}},
		},
	},
	"/galeri": {
		Slug: "/galeri",
		Sections: []Section{
			{Key: "header", Title: "Sayfa Başlığı", Fields: []Field{
				{Key: "title", Label: "Başlık", Type: FieldTypeText},
				{Key: "subtitle", Label: "Alt Başlık", Type: FieldTypeText},
			}},
			{Key: "images", Title: "Galeri Görselleri", Fields: []Field{
				{Key: "images", Label: "Görseller", Type: FieldTypeImages},
			}},
		},
	},
	"/urunler": {
		Slug: "/urunler",
		Sections: []Section{
			{Key: "header", Title: "Sayfa Başlığı", Fields: []Field{
				{Key: "title", Label: "Başlık", Type: FieldTypeText},
				{Key: "subtitle", Label: "Alt Başlık", Type: FieldTypeText},
			}},
			{Key: "products", Title: "Ürünler", Fields: []Field{
				{Key: "items", Label: "Ürünler", Type: FieldTypeItems},
			}},
		},
	},
	"/iletisim": {
		Slug: "/iletisim",
		Sections: []Section{
			{Key: "header", Title: "Sayfa Başlığı", Fields: []Field{
				{Key: "title", Label: "Başlık", Type: FieldTypeText},
				{Key: "subtitle", Label: "Alt Başlık", Type: FieldTypeText},
			}},
			{Key: "info", Title: "İletişim Bilgileri", Fields: []Field{
				{Key: "email", Label: "E-posta", Type: FieldTypeText},
				{Key: "phone", Label: "Telefon", Type: FieldTypeText},
				{Key: "address", Label: "Adres", Type: FieldTypeTextarea},
			}},
		},
	},
	"/gizlilik-politikasi": {
		Slug: "/gizlilik-politikasi",
		Sections: []Section{
			{Key: "header", Title: "Sayfa Başlığı", Fields: []Field{
				{Key: "title", Label: "Başlık", Type: FieldTypeText},
			}},
			{Key: "body", Title: "İçerik", Fields: []Field{
				{Key: "body", Label: "Metin (Markdown)", Type: FieldTypeTextarea},
			}},
		},
	},
	"/cerez-politikasi": {
		Slug: "/cerez-politikasi",
		Sections: []Section{
			{Key: "header", Title: "Sayfa Başlığı", Fields: []Field{
				{Key: "title", Label: "Başlık", Type: FieldTypeText},
			}},
			{Key: "cookieTypes", Title: "Çerez Türleri", Fields: []Field{
				{Key: "items", Label: "Çerez Türleri", Type: FieldTypeItems},
			}},
			{Key: "body", Title: "İçerik", Fields: []Field{
				{Key: "body", Label: "Metin (Markdown)", Type: FieldTypeTextarea},
			}},
		},
	},
	"/kvkk": {
		Slug: "/kvkk",
		Sections: []Section{
			{Key: "header", Title: "Sayfa Başlığı", Fields: []Field{
				{Key: "title", Label: "Başlık", Type: FieldTypeText},
			}},
			{Key: "body", Title: "İçerik", Fields: []Field{
				{Key: "body", Label: "Metin (Markdown)", Type: FieldTypeTextarea},
			}},
		},
	},
}

// Schema returns the editable structure of the given page.
func Schema(slug string) (PageSchema, bool) {
	s, ok := pageSchemas[slug]
	return s, ok
}

// Slugs returns all known page slugs.
func Slugs() []string {
	slugs := make([]string, 0, len(pageSchemas))
	for slug := range pageSchemas {
		slugs = append(slugs, slug)
	}
	return slugs
}
