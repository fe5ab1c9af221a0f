// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package webui

import "html/template"

var page = template.Must(template.New("index").Parse(`<!doctype html>
<html>
<head>
  <meta charset="utf-8">
  <title>PDF Combiner</title>
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <style>
    :root { --fg:#111; --muted:#666; --border:#eee; --warn:#a15c00; --err:#b00020; }
    * { box-sizing: border-box; }
    body { font-family: system-ui, -apple-system, Segoe UI, Roboto, sans-serif; margin: 24px; color: var(--fg); }
    h1 { margin-top: 0; font-size: 22px; }
    table { width: 100%; border-collapse: collapse; margin: 12px 0; }
    th, td { padding: 8px 10px; border-bottom: 1px solid var(--border); text-align: left; }
    tr:hover { background: #fafafa; }
    .row { display:flex; gap:8px; align-items:center; margin: 8px 0; }
    input[type="text"] { padding: 10px; border: 1px solid #ddd; border-radius: 8px; min-width: 360px; }
    .btn { padding: 10px 14px; border: 0; background: #111; color: #fff; border-radius: 8px; cursor: pointer; }
    .muted { color: var(--muted); font-size: 12px; }
    .warn { color: var(--warn); }
    .err { color: var(--err); }
    .box { border:1px solid var(--border); border-radius:12px; padding:12px; margin: 12px 0; }
  </style>
</head>
<body>
  <h1>PDF Combiner with Automatic Bookmarks</h1>

  <form method="get" action="/" class="box">
    <div class="row">
      <label for="folder">Folder</label>
      <input type="text" id="folder" name="folder" value="{{.Folder}}" placeholder="/path/to/pdfs">
      <label><input type="checkbox" name="recursive" {{if .Recursive}}checked{{end}}> include subfolders</label>
      <button class="btn" type="submit">Scan for PDFs</button>
    </div>
  </form>

  {{with .Error}}<p class="err">{{.}}</p>{{end}}

  {{if .Files}}
  <form method="post" action="/merge" class="box">
    <input type="hidden" name="folder" value="{{.Folder}}">
    {{if .Recursive}}<input type="hidden" name="recursive" value="on">{{end}}
    <p>Found {{len .Files}} PDF files, {{.TotalPages}} pages.</p>
    <table>
      <thead><tr><th></th><th>File</th><th>Pages</th><th>Path</th></tr></thead>
      <tbody>
      {{range .Files}}
        <tr>
          <td><input type="checkbox" name="file" value="{{.RelPath}}" {{if .OK}}checked{{else}}disabled{{end}}></td>
          <td>{{.RelPath}}</td>
          <td>{{if .OK}}{{.Pages}}{{else}}<span class="warn">{{.Problem}}</span>{{end}}</td>
          <td class="muted">{{.Path}}</td>
        </tr>
      {{end}}
      </tbody>
    </table>
    <div class="row">
      <label for="output">Output filename</label>
      <input type="text" id="output" name="output" value="{{.Output}}">
      <label><input type="checkbox" name="overwrite"> overwrite if it exists</label>
      <button class="btn" type="submit">Combine PDFs</button>
    </div>
  </form>
  {{end}}

  {{with .Result}}
  <div class="box">
    <p>Created <a href="{{.Download}}">{{.Output}}</a> with {{.Files}} bookmarks and {{.Pages}} pages.</p>
    {{range .Skipped}}<p class="warn">skipped {{.}}</p>{{end}}
    <p class="muted">Open the file in any PDF viewer to see the bookmarks in the sidebar.</p>
  </div>
  {{end}}
</body>
</html>
`))
