package handlers

// pageTemplates holds the index page and the forecast fragment. The fragment
// replaces the whole forecast area in one swap; the page never receives a
// partially-built forecast.
const pageTemplates = `
{{define "forecast_fragment"}}
<h3 id="hourly-forecast-heading">{{.Heading}}</h3>
<div id="hourly-forecast-list" class="forecast-list">
{{range .Hourly}}  <div class="forecast-item">
    <h4>{{.Label}}</h4>
    <p>Temperature: {{.Temperature}}&deg;F</p>
  </div>
{{end}}</div>
<div id="daily-forecast-list" class="forecast-list">
{{range .Daily}}  <div class="forecast-item">
    <h4>{{.Label}}</h4>
    <p>Max Temperature: {{.MaxTemp}}&deg;F</p>
    <p>Min Temperature: {{.MinTemp}}&deg;F</p>
  </div>
{{end}}</div>
{{end}}

{{define "index"}}<!DOCTYPE html>
<html>
<head>
  <title>hourlycast</title>
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <style>
    body { font-family: sans-serif; margin: 2em auto; max-width: 48em; }
    .forecast-list { display: flex; flex-wrap: wrap; gap: 0.5em; }
    .forecast-item { border: 1px solid #ccc; border-radius: 4px; padding: 0.5em; }
    .error { color: #a00; }
  </style>
</head>
<body>
  <h1>hourlycast</h1>
  <p>You are in: <span id="current-city">...</span></p>
  <form id="location-form">
    <input type="text" id="location-input" name="location" placeholder="City or place name" autocomplete="off">
    <button type="submit">Get Forecast</button>
  </form>
  <div id="forecast"></div>
  <script>
    const forecast = document.getElementById('forecast');

    async function loadForecast(query) {
      const resp = await fetch('/api/forecast' + query);
      forecast.innerHTML = await resp.text();
    }

    async function loadPlace(query) {
      const resp = await fetch('/api/place' + query);
      if (!resp.ok) return;
      const data = await resp.json();
      document.getElementById('current-city').textContent = data.place;
    }

    document.getElementById('location-form').addEventListener('submit', (e) => {
      e.preventDefault();
      const location = document.getElementById('location-input').value;
      loadForecast(location ? '?location=' + encodeURIComponent(location) : '');
    });

    window.addEventListener('load', () => {
      if (navigator.geolocation) {
        navigator.geolocation.getCurrentPosition(
          (pos) => {
            const query = '?lat=' + pos.coords.latitude + '&lon=' + pos.coords.longitude;
            loadForecast(query);
            loadPlace(query);
          },
          () => { loadForecast(''); loadPlace(''); },
          { timeout: 10000 }
        );
      } else {
        loadForecast('');
        loadPlace('');
      }
    });
  </script>
</body>
</html>
{{end}}
`
