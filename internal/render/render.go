// Package render turns a feed snapshot plus the user's sync state into
// a browsable HTML page: watched videos struck through, unseen uploads
// flagged, pending discoveries listed in a banner.
package render

import (
	"html/template"
	"io"

	"yt-curator/internal/models"
)

// Page is the template input for one feed page.
type Page struct {
	Feed       string
	Categories map[string][]CreatorSection
	Pending    []models.PendingEntry
}

// CreatorSection is one creator's block within a category.
type CreatorSection struct {
	Creator string
	Channel string
	Videos  []VideoView
}

// VideoView is a video annotated with the user's state.
type VideoView struct {
	models.Video
	Watched bool
	Known   bool
}

type Renderer struct {
	tmpl *template.Template
}

func New() *Renderer {
	return &Renderer{tmpl: template.Must(template.New("page").Parse(pageTemplate))}
}

// BuildPage annotates one feed's slice of the snapshot with watched
// and known markers and collects that feed's pending entries.
func BuildPage(feed string, snapshot models.FeedSnapshot, state *models.SyncState) Page {
	state.Seed()
	known := state.MyVideos[feed]

	page := Page{Feed: feed, Categories: map[string][]CreatorSection{}}
	for category, creators := range snapshot[feed] {
		sections := make([]CreatorSection, 0, len(creators))
		for _, creator := range creators {
			views := make([]VideoView, 0, len(creator.Videos))
			for _, video := range creator.Videos {
				_, isKnown := known[video.VideoID]
				_, watched := state.Watched[video.VideoID]
				views = append(views, VideoView{Video: video, Watched: watched, Known: isKnown})
			}
			sections = append(sections, CreatorSection{
				Creator: creator.Creator,
				Channel: creator.Channel,
				Videos:  views,
			})
		}
		page.Categories[category] = sections
	}

	for _, entry := range state.PendingNew {
		if entry.PageType == feed {
			page.Pending = append(page.Pending, entry)
		}
	}
	return page
}

// Render writes the page markup.
func (r *Renderer) Render(w io.Writer, page Page) error {
	return r.tmpl.Execute(w, page)
}

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Feed}} videos</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
.watched a { text-decoration: line-through; color: #888; }
.badge { background: #c00; color: #fff; padding: 0 .4em; border-radius: 3px; font-size: .8em; }
.pending { border: 1px solid #c90; background: #ffd; padding: .5rem 1rem; margin-bottom: 1.5rem; }
h2 { margin-top: 2rem; }
</style>
</head>
<body>
<h1>{{.Feed}}</h1>
{{if .Pending}}
<div class="pending">
<strong>New videos</strong>
<ul>
{{range .Pending}}<li><a href="https://www.youtube.com/watch?v={{.VideoID}}">{{.Title}}</a> from {{.Creator}} ({{.DateStr}})</li>
{{end}}</ul>
</div>
{{end}}
{{range $category, $sections := .Categories}}
<h2>{{$category}}</h2>
{{range $sections}}
<h3>{{.Creator}}</h3>
<ul>
{{range .Videos}}<li{{if .Watched}} class="watched"{{end}}><a href="{{.URL}}">{{.Title}}</a> {{.DateStr}} {{.Duration}}{{if and .IsNew (not .Known)}} <span class="badge">NEW</span>{{end}}</li>
{{end}}</ul>
{{end}}
{{end}}
</body>
</html>
`
