package api

import "net/http"

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(indexHTML))
}

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>labelgen</title>
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
    background: #0a0a0a;
    color: #e0e0e0;
    display: flex;
    justify-content: center;
    align-items: center;
    min-height: 100vh;
  }
  .card {
    background: #1a1a1a;
    border: 1px solid #333;
    border-radius: 16px;
    padding: 40px;
    max-width: 520px;
    width: 100%;
  }
  h1 { font-size: 20px; font-weight: 600; margin-bottom: 24px; text-align: center; }
  label { display: block; font-size: 13px; color: #888; margin: 12px 0 4px; }
  input[type=text], select {
    width: 100%;
    padding: 8px 10px;
    background: #0a0a0a;
    color: #e0e0e0;
    border: 1px solid #333;
    border-radius: 8px;
  }
  .row { display: flex; gap: 8px; }
  .row > * { flex: 1; }
  button {
    margin-top: 20px;
    padding: 10px 16px;
    border: 0;
    border-radius: 8px;
    background: #e0e0e0;
    color: #0a0a0a;
    font-weight: 600;
    cursor: pointer;
  }
  #preview {
    margin-top: 24px;
    min-height: 120px;
    display: flex;
    align-items: center;
    justify-content: center;
    background: #fff;
    border-radius: 12px;
  }
  #preview img { max-width: 100%; }
  #status { font-size: 13px; color: #f87171; margin-top: 8px; min-height: 1em; }
</style>
</head>
<body>
<div class="card">
  <h1>Label generator</h1>
  <form id="form">
    <label for="data">Data</label>
    <div class="row">
      <input type="text" id="data" required>
      <button type="button" id="next" style="margin-top:0;flex:0">+1</button>
    </div>
    <label for="type">Type</label>
    <select id="type"></select>
    <label for="name">Product name</label>
    <input type="text" id="name">
    <label for="price">Price</label>
    <input type="text" id="price">
    <label><input type="checkbox" id="logo"> Include logo</label>
    <button type="submit">Generate</button>
  </form>
  <div id="preview"></div>
  <div id="status"></div>
</div>
<script>
(function() {
  var $ = function(id) { return document.getElementById(id); };
  var preview = $('preview');
  var statusEl = $('status');
  var currentURL = null;

  function fail(r) {
    return r.json().then(function(body) { throw new Error(body.error || r.statusText); });
  }

  function post(path, body) {
    return fetch(path, {
      method: 'POST',
      headers: { 'Content-Type': 'application/json' },
      body: JSON.stringify(body)
    }).then(function(r) { return r.ok ? r : fail(r); });
  }

  fetch('/symbologies')
    .then(function(r) { return r.json(); })
    .then(function(data) {
      data.symbologies.forEach(function(name) {
        var opt = document.createElement('option');
        opt.value = name;
        opt.textContent = name;
        $('type').appendChild(opt);
      });
    });

  $('next').addEventListener('click', function() {
    post('/increment', { value: $('data').value })
      .then(function(r) { return r.json(); })
      .then(function(data) { $('data').value = data.value; statusEl.textContent = ''; })
      .catch(function(err) { statusEl.textContent = err.message; });
  });

  $('form').addEventListener('submit', function(ev) {
    ev.preventDefault();
    post('/labels', {
      data: $('data').value,
      type: $('type').value,
      product_name: $('name').value,
      price: $('price').value,
      logo: $('logo').checked
    })
      .then(function(r) { return r.blob(); })
      .then(function(blob) {
        if (currentURL) URL.revokeObjectURL(currentURL);
        currentURL = URL.createObjectURL(blob);
        var img = document.createElement('img');
        img.setAttribute('alt', 'label preview');
        img.setAttribute('src', currentURL);
        while (preview.firstChild) preview.removeChild(preview.firstChild);
        preview.appendChild(img);
        statusEl.textContent = '';
      })
      .catch(function(err) { statusEl.textContent = err.message; });
  });
})();
</script>
</body>
</html>`
