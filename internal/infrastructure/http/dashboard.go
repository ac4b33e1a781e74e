package httpserver

const dashboardHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8" />
  <title>Crypto Dashboard</title>
  <script src="https://unpkg.com/chart.js@4/dist/chart.umd.js"></script>
  <style>
    body { font-family: sans-serif; margin: 1.5rem auto; max-width: 1100px; color: #222; }
    h1 { margin-bottom: 0.25rem; }
    .subtitle { color: #666; margin-top: 0; }
    .cards { display: flex; gap: 1rem; margin: 1rem 0; flex-wrap: wrap; }
    .card { border: 1px solid #ddd; border-radius: 8px; padding: 0.75rem 1.25rem; min-width: 180px; }
    .card .label { color: #666; font-size: 0.85rem; }
    .card .value { font-size: 1.5rem; font-weight: bold; }
    .controls { display: flex; align-items: center; gap: 1rem; margin: 1rem 0; }
    .updated { color: #666; font-size: 0.85rem; }
    .chart-box { margin: 1.5rem 0; }
    table { border-collapse: collapse; width: 100%; }
    th, td { border: 1px solid #ddd; padding: 0.5rem 0.75rem; text-align: right; }
    th:first-child, td:first-child { text-align: left; }
    th { background: #f5f5f5; }
    .nodata { color: #888; font-style: italic; margin: 2rem 0; }
  </style>
</head>
<body>
  <h1>Cryptocurrency Real-Time Dashboard</h1>
  <p class="subtitle">Tracking Bitcoin and Ethereum prices, volumes, and trends</p>

  <div id="cards" class="cards"></div>

  <div class="controls">
    <label>Select Time Period
      <select id="period">
        <option value="1">Last 1 Hour</option>
        <option value="24" selected>Last 24 Hours</option>
        <option value="168">Last 7 Days</option>
      </select>
    </label>
    <button id="refresh">Refresh Data</button>
    <span class="updated" id="updated">Data updates when refreshed</span>
  </div>

  <div id="nodata" class="nodata" hidden>No data available for this time period</div>

  <div class="chart-box"><canvas id="trend"></canvas></div>
  <div id="metrics"></div>

  <h2>Summary Statistics</h2>
  <table id="summary">
    <thead>
      <tr>
        <th>Cryptocurrency</th><th>Current Price</th><th>Price Change</th>
        <th>Highest Price</th><th>Lowest Price</th><th>Average Volume</th>
      </tr>
    </thead>
    <tbody></tbody>
  </table>

  <script>
    const state = { charts: {} };

    const usd = (v) => v.toLocaleString("en-US", { style: "currency", currency: "USD" });
    const cap = (s) => s.charAt(0).toUpperCase() + s.slice(1);

    function tickFormat(hours) {
      return (v) => {
        const d = new Date(v);
        return hours > 24
          ? d.toLocaleString([], { month: "numeric", day: "numeric", hour: "2-digit", minute: "2-digit" })
          : d.toLocaleTimeString([], { hour: "2-digit", minute: "2-digit" });
      };
    }

    function replaceChart(id, config) {
      if (state.charts[id]) state.charts[id].destroy();
      state.charts[id] = new Chart(document.getElementById(id), config);
    }

    function renderCards(latest) {
      const el = document.getElementById("cards");
      el.innerHTML = "";
      for (const s of latest) {
        const card = document.createElement("div");
        card.className = "card";
        card.innerHTML =
          '<div class="label">' + cap(s.asset) + ' Price</div>' +
          '<div class="value">' + usd(s.price_usd) + '</div>';
        el.appendChild(card);
      }
    }

    function renderTrend(series, hours) {
      const datasets = series.map((sr) => ({
        label: cap(sr.asset),
        data: sr.samples.map((s) => ({ x: Date.parse(s.captured_at), y: s.price_usd })),
        borderWidth: 2,
        pointRadius: 1,
      }));
      replaceChart("trend", {
        type: "line",
        data: { datasets },
        options: {
          plugins: { title: { display: true, text: "Price Trends - Last " + hours + " Hours" } },
          scales: {
            x: { type: "linear", ticks: { callback: tickFormat(hours) }, title: { display: true, text: "Time" } },
            y: { title: { display: true, text: "Price (USD)" } },
          },
        },
      });
    }

    function renderMetrics(series, hours) {
      const box = document.getElementById("metrics");
      for (const id in state.charts) {
        if (id.startsWith("metrics-")) { state.charts[id].destroy(); delete state.charts[id]; }
      }
      box.innerHTML = "";
      for (const sr of series) {
        const id = "metrics-" + sr.asset;
        const wrap = document.createElement("div");
        wrap.className = "chart-box";
        wrap.innerHTML = '<canvas id="' + id + '"></canvas>';
        box.appendChild(wrap);
        state.charts[id] = new Chart(document.getElementById(id), {
          type: "line",
          data: {
            datasets: [
              {
                label: "Price",
                data: sr.samples.map((s) => ({ x: Date.parse(s.captured_at), y: s.price_usd })),
                borderColor: "blue", borderWidth: 2, pointRadius: 1, yAxisID: "y",
              },
              {
                label: "Volume",
                data: sr.samples.map((s) => ({ x: Date.parse(s.captured_at), y: s.volume_usd })),
                borderColor: "red", borderWidth: 2, pointRadius: 1, yAxisID: "y1",
              },
            ],
          },
          options: {
            plugins: { title: { display: true, text: cap(sr.asset) + " Price and Volume" } },
            scales: {
              x: { type: "linear", ticks: { callback: tickFormat(hours) }, title: { display: true, text: "Time" } },
              y: { position: "left", title: { display: true, text: "Price (USD)" } },
              y1: { position: "right", grid: { drawOnChartArea: false }, title: { display: true, text: "Volume (USD)" } },
            },
          },
        });
      }
    }

    function renderSummary(summaries) {
      const body = document.querySelector("#summary tbody");
      body.innerHTML = "";
      for (const s of summaries) {
        const row = document.createElement("tr");
        row.innerHTML =
          "<td>" + cap(s.asset) + "</td>" +
          "<td>" + usd(s.current_price) + "</td>" +
          "<td>" + s.percent_change.toFixed(2) + "%</td>" +
          "<td>" + usd(s.max_price) + "</td>" +
          "<td>" + usd(s.min_price) + "</td>" +
          "<td>" + usd(s.mean_volume) + "</td>";
        body.appendChild(row);
      }
    }

    async function loadAll() {
      const hours = document.getElementById("period").value;
      const [latestRes, historyRes, summaryRes] = await Promise.all([
        fetch("/api/prices/latest"),
        fetch("/api/prices/history?hours=" + hours),
        fetch("/api/summary?hours=" + hours),
      ]);
      const latest = await latestRes.json();
      const history = await historyRes.json();
      const summary = await summaryRes.json();

      renderCards(latest.latest);
      const empty = history.series.every((sr) => sr.samples.length === 0);
      document.getElementById("nodata").hidden = !empty;
      renderTrend(history.series, history.hours);
      renderMetrics(history.series, history.hours);
      renderSummary(summary.summaries);

      document.getElementById("updated").textContent =
        "Data updates when refreshed • Last updated: " + new Date().toLocaleString();
    }

    document.getElementById("refresh").addEventListener("click", loadAll);
    document.getElementById("period").addEventListener("change", loadAll);
    loadAll();
  </script>
</body>
</html>`
