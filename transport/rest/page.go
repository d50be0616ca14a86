package rest

import "html/template"

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Tic-tac-toe</title>
<style>
body { font-family: sans-serif; text-align: center; margin-top: 2em; }
img { cursor: pointer; }
</style>
</head>
<body>
<a href="/click"><img src="/board.png?v={{.Version}}" ismap width="{{.Width}}" height="{{.Height}}" alt="board"></a>
<p id="status">{{.Status}}</p>
<form method="post" action="/reset"><button type="submit">New game</button></form>
</body>
</html>
`))

type pageData struct {
	Width   int
	Height  int
	Status  string
	Version string
}
