package server

// indexHTML is the minimal upload form. The front end is deliberately
// plain: the interesting behavior lives behind /process and /highlight.
const indexHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>PDF Form Filler</title>
</head>
<body>
  <h1>PDF Form Filler</h1>
  <form action="/process" method="post" enctype="multipart/form-data">
    <p><label>Name <input type="text" name="name"></label></p>
    <p><label>Email <input type="text" name="email"></label></p>
    <p><label>Phone <input type="text" name="phone"></label></p>
    <p><label>Address <input type="text" name="address"></label></p>
    <p><label>EIN <input type="text" name="ein"></label></p>
    <p><label>ZIP of PDFs <input type="file" name="zipfile" accept=".zip"></label></p>
    <p><button type="submit">Fill Documents</button></p>
  </form>
  <h2>Highlight Phrases</h2>
  <form action="/highlight" method="post" enctype="multipart/form-data">
    <p><label>Phrases (comma separated) <input type="text" name="custom_words"></label></p>
    <p><label>ZIP of PDFs <input type="file" name="zipfile" accept=".zip"></label></p>
    <p><button type="submit">Highlight Documents</button></p>
  </form>
</body>
</html>
`
