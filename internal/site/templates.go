package site

// pageTemplate is the Go html/template for the portfolio page.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.ProfileName}}</title>
  <link rel="stylesheet" href="style.css">
</head>
<body>
  <header class="hero">
    <h1>{{.ProfileName}}</h1>
    {{if .Tagline}}<p class="tagline">{{.Tagline}}</p>{{end}}
  </header>

  <main>
    <section id="repositories">
      <h2>Repositories</h2>
      {{if .RepoError}}
      <p class="section-message error">{{.RepoError}}</p>
      {{else}}
      <div class="card-grid">
        {{range .Repos}}
        <article class="card repo-card">
          <h3><a href="{{.URL}}">{{.Name}}</a></h3>
          <p class="description">{{.Description}}</p>
          <ul class="repo-meta">
            <li>&#9733; {{.Stars}}</li>
            <li>&#8916; {{.Forks}}</li>
            <li>{{.Language}}</li>
            {{if .Updated}}<li>Updated {{.Updated}}</li>{{end}}
          </ul>
        </article>
        {{end}}
      </div>
      {{end}}
    </section>

    <section id="publications">
      <h2>Publications</h2>
      {{if .PubError}}
      <p class="section-message error">{{.PubError}}</p>
      {{else if .PubEmpty}}
      <p class="section-message empty">{{.PubEmpty}}</p>
      {{else}}
      <div class="card-list">
        {{range .Publications}}
        <article class="card pub-card">
          <h3>{{if .Link}}<a href="{{.Link}}">{{.Title}}</a>{{else}}{{.Title}}{{end}}</h3>
          {{if .Authors}}<p class="authors">{{.Authors}}</p>{{end}}
          <p class="pub-meta">
            {{if .Journal}}<span class="journal">{{.Journal}}</span>{{end}}
            {{if .Date}}<span class="date">{{.Date}}</span>{{end}}
          </p>
        </article>
        {{end}}
      </div>
      {{end}}
    </section>
  </main>

  <footer>
    <p>Generated {{.GeneratedAt}}</p>
  </footer>
</body>
</html>`

// cssContent is the stylesheet written next to index.html.
const cssContent = `:root {
  --bg: #fafafa;
  --fg: #1f2328;
  --muted: #57606a;
  --card-bg: #ffffff;
  --card-border: #d0d7de;
  --accent: #0969da;
  --error: #cf222e;
}

* { box-sizing: border-box; }

body {
  margin: 0;
  font-family: -apple-system, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
  background: var(--bg);
  color: var(--fg);
  line-height: 1.5;
}

.hero {
  padding: 3rem 1.5rem 2rem;
  text-align: center;
  border-bottom: 1px solid var(--card-border);
  background: var(--card-bg);
}

.hero h1 { margin: 0 0 0.25rem; }

.tagline { color: var(--muted); margin: 0; }

main {
  max-width: 960px;
  margin: 0 auto;
  padding: 1.5rem;
}

section { margin-bottom: 2.5rem; }

.card-grid {
  display: grid;
  grid-template-columns: repeat(auto-fill, minmax(280px, 1fr));
  gap: 1rem;
}

.card-list { display: flex; flex-direction: column; gap: 1rem; }

.card {
  background: var(--card-bg);
  border: 1px solid var(--card-border);
  border-radius: 6px;
  padding: 1rem;
}

.card h3 { margin: 0 0 0.5rem; font-size: 1.05rem; }

.card a { color: var(--accent); text-decoration: none; }
.card a:hover { text-decoration: underline; }

.description, .authors { color: var(--muted); margin: 0 0 0.5rem; }

.repo-meta {
  list-style: none;
  display: flex;
  flex-wrap: wrap;
  gap: 0.75rem;
  margin: 0;
  padding: 0;
  font-size: 0.85rem;
  color: var(--muted);
}

.pub-meta { font-size: 0.85rem; color: var(--muted); margin: 0; }
.pub-meta .journal { font-style: italic; margin-right: 0.5rem; }

.section-message { color: var(--muted); }
.section-message.error { color: var(--error); }

footer {
  text-align: center;
  color: var(--muted);
  font-size: 0.85rem;
  padding: 1.5rem;
  border-top: 1px solid var(--card-border);
}
`
