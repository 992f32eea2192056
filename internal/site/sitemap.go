package site

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ternarybob/factsheet/internal/models"
)

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod"`
}

// writeSitemap emits sitemap.xml for the built properties. Without a
// configured domain the locations are site-relative paths, which is enough
// for local preview.
func (g *Generator) writeSitemap(records []*models.PropertyRecord) error {
	base := strings.TrimSuffix(g.config.Site.Domain, "/")
	now := time.Now().Format("2006-01-02")

	set := urlSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  []sitemapURL{{Loc: base + "/", LastMod: now}},
	}
	for _, record := range records {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:     base + "/" + record.Property.ID + "/",
			LastMod: now,
		})
	}

	data, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return err
	}

	out := append([]byte(xml.Header), data...)
	return os.WriteFile(filepath.Join(g.config.Site.OutputDir, "sitemap.xml"), out, 0644)
}
