package api

const streamDocsHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>Live Compile &amp; Events</title>
  <style>
    body {
      margin: 0 auto;
      max-width: 860px;
      padding: 24px;
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
      font-size: 14px;
      line-height: 1.65;
      background: #0d1117;
      color: #c9d1d9;
    }
    a { color: #58a6ff; text-decoration: none; }
    code, pre { background: #161b22; border: 1px solid #30363d; border-radius: 6px; }
    code { padding: 1px 5px; }
    pre { padding: 12px; overflow-x: auto; }
    table { border-collapse: collapse; }
    td { border: 1px solid #30363d; padding: 4px 10px; }
  </style>
</head>
<body>
  <p><a href="/docs">&larr; REST API</a></p>

  <h2>WebSocket: <code>GET /ws/compile</code></h2>
  <p>Send one chart spec per text frame, as accepted by <code>POST /api/v1/compile</code>.
  Each frame is answered with one text frame holding either <code>result</code> or <code>error</code>.</p>
<pre>
&gt; {"type":"line","series":[{"data":[10,20,null,40]}]}
&lt; {"result":{"url":"https://chart.googleapis.com/chart?chs=400x200&amp;cht=lc&amp;chd=t:10,20,-1,40",...}}

&gt; {"type":"line","series":[{"data":[1],"color":"nope"}]}
&lt; {"error":{"code":"INVALID_RANGE","message":"..."}}
</pre>
  <p>Binary frames are ignored. Malformed JSON is answered with a <code>VALIDATION</code> error; the socket stays open.</p>

  <h2>Server-sent events: <code>GET /api/v1/events</code></h2>
  <p>Streams one event per compile, render, locate and import. Filter with <code>?feeds=compile,render</code>.</p>
  <table>
    <tr><td><code>Content-Type</code></td><td><code>text/event-stream</code></td></tr>
    <tr><td>event</td><td><code>compile</code>, <code>render</code>, <code>locate</code>, <code>import</code></td></tr>
    <tr><td>data</td><td>journal event JSON: <code>time</code>, <code>chart_id</code>, <code>type_code</code>, <code>url_length</code>, <code>warnings</code>, <code>error</code>, <code>duration_ms</code></td></tr>
  </table>
<pre>
event: compile
data: {"time":"2024-03-01T12:00:00Z","kind":"compile","type_code":"lc","url_length":81,"duration_ms":0}
</pre>
</body>
</html>`
