package site

// documentTemplate is the text/template shell every page is rendered into.
// Fragment values are inserted verbatim; nothing in them is parsed.
const documentTemplate = `<!DOCTYPE html>
<html lang="{{.Lang}}">
  <head>
    {{.Head}}
    <script type="application/ld+json">
      {{.StructuredData}}
    </script>
  </head>
  <body>
    <a href="#main-content" class="skip-link">Skip to main content</a>
    <div id="app">
      <main id="main-content">
        {{.Main}}
        {{.Footer}}
      </main>
      {{.Header}}
    </div>
    <script type="module" src="{{.ScriptSrc}}" defer></script>
{{- if .PlainText}}
    <style>` + plainTextStyle + `</style>
{{- end}}
  </body>
</html>
`

// plainTextWrapper surrounds content of pages that are not full_page.
const plainTextWrapper = `<section class="wrapper-fw" id="main-content">
          <div class="container grid-split-rows pp p-min">
            <div class="flex p-big plain-text-content">
              %s
            </div>
          </div>
        </section>`

// plainTextStyle is the default typography for wrapped plain-text pages.
const plainTextStyle = `
      .plain-text-content h1 {
        margin-bottom: 30px;
      }
      .plain-text-content h2 {
        margin-top: 40px;
        margin-bottom: 20px;
      }
      .plain-text-content h3 {
        margin-top: 25px;
        margin-bottom: 15px;
        text-align: left;
      }
      .plain-text-content p {
        margin-bottom: 15px;
        line-height: 1.6;
      }
      .plain-text-content ul {
        margin-bottom: 15px;
        padding-left: 20px;
      }
      .plain-text-content li {
        margin-bottom: 10px;
      }
      .plain-text-content a {
        color: inherit;
        text-decoration: underline;
      }
    `

// ContentNotFound replaces the body of a page whose content file is missing.
const ContentNotFound = `<div class="container"><h1>Content not found</h1></div>`
