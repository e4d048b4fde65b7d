// Copyright (c) 2026, Chartex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

// indexPage is the demo host page: it fetches rendered geometry,
// paints it into an inline SVG, and forwards pointer events over the
// websocket.
const indexPage = `<!DOCTYPE html>
<html>
<head><title>chartex demo</title>
<style>
body { font-family: sans-serif; margin: 2em; }
#tooltip { position: absolute; background: #333; color: #fff; padding: 4px 8px;
  border-radius: 3px; font-size: 12px; pointer-events: none; display: none; }
</style>
</head>
<body>
<svg id="chart" width="800" height="450"></svg>
<div id="tooltip"></div>
<script>
const svg = document.getElementById("chart");
const tip = document.getElementById("tooltip");
const ws = new WebSocket("ws://" + location.host + "/events");

async function render() {
  const res = await fetch("/render");
  const data = await res.json();
  svg.innerHTML = "";
  for (const s of data.series) {
    if (s.fill) {
      const p = document.createElementNS("http://www.w3.org/2000/svg", "path");
      p.setAttribute("d", s.fill);
      p.setAttribute("fill", s.style.Fill || "#00bdae");
      p.setAttribute("opacity", s.style.Opacity || 1);
      svg.appendChild(p);
    }
    if (s.border) {
      const b = document.createElementNS("http://www.w3.org/2000/svg", "path");
      b.setAttribute("d", s.border);
      b.setAttribute("fill", "none");
      b.setAttribute("stroke", s.style.Stroke || "#404041");
      svg.appendChild(b);
    }
    for (const m of s.markers || []) {
      const c = document.createElementNS("http://www.w3.org/2000/svg", "circle");
      c.setAttribute("cx", m.x);
      c.setAttribute("cy", m.y);
      c.setAttribute("r", m.radius);
      c.setAttribute("fill", s.style.Fill || "#00bdae");
      svg.appendChild(c);
    }
  }
}

ws.onmessage = (ev) => {
  const u = JSON.parse(ev.data);
  if (u.redraw) render();
  if (u.tooltip) {
    tip.style.display = "block";
    tip.style.left = (u.tooltip.Box.X + svg.getBoundingClientRect().left) + "px";
    tip.style.top = (u.tooltip.Box.Y + svg.getBoundingClientRect().top) + "px";
    tip.textContent = u.tooltip.Header + " " + (u.tooltip.Lines || []).join(" | ");
  } else {
    tip.style.display = "none";
  }
};

function send(type, ev) {
  if (ws.readyState !== WebSocket.OPEN) return;
  const r = svg.getBoundingClientRect();
  ws.send(JSON.stringify({
    type: type,
    x: ev.clientX - r.left,
    y: ev.clientY - r.top,
    deltaY: ev.deltaY || 0,
    detail: ev.detail || 0,
  }));
}

svg.addEventListener("mousemove", (e) => send("mousemove", e));
svg.addEventListener("mousedown", (e) => send("mousedown", e));
svg.addEventListener("mouseup", (e) => send("mouseup", e));
svg.addEventListener("mouseleave", (e) => send("mouseleave", e));
svg.addEventListener("click", (e) => send("click", e));
svg.addEventListener("wheel", (e) => { e.preventDefault(); send("mousewheel", e); });

render();
</script>
</body>
</html>`
