package export

import (
	"html/template"
	"net/http"

	"github.com/Dicklesworthstone/progress_curve/pkg/layout"
	"github.com/Dicklesworthstone/progress_curve/pkg/view"
	"github.com/Dicklesworthstone/progress_curve/pkg/watcher"
)

// pageConfig is embedded into the page script.
type pageConfig struct {
	SMMin      float64 `json:"smMin"`
	LGMin      float64 `json:"lgMin"`
	Threshold  float64 `json:"threshold"`
	DebounceMS int64   `json:"debounceMs"`
	StatusPoll int64   `json:"statusPollMs"`
}

func defaultPageConfig() pageConfig {
	return pageConfig{
		SMMin:      layout.SMMinWidth,
		LGMin:      layout.LGMinWidth,
		Threshold:  view.RelayoutThreshold,
		DebounceMS: watcher.DefaultDebounceDuration.Milliseconds(),
		StatusPoll: 2000,
	}
}

var pageTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Progress Curve</title>
<style>
  body { margin: 0; font-family: system-ui, sans-serif; background: #fff; }
  #chart { width: 100%; max-width: 1600px; margin: 0 auto; }
  #chart svg { display: block; width: 100%; height: auto; }
  [data-project] { cursor: pointer; }
</style>
</head>
<body>
<div id="chart" role="img" aria-label="Progress curve"></div>
<script>
(function () {
  const cfg = {{.}};
  const box = document.getElementById("chart");
  let lastWidth = null, lastPlain = "", lastTier = "", lastReloads = -1, hover = "", timer = null;

  function plainTier(w) { return w < cfg.smMin ? "base" : w < cfg.lgMin ? "sm" : "lg"; }

  async function draw(width) {
    const q = new URLSearchParams({ width: String(Math.round(width)) });
    if (lastTier) { q.set("prevTier", lastTier); q.set("prevWidth", String(Math.round(lastWidth))); }
    if (hover) q.set("hover", hover);
    const res = await fetch("/chart.svg?" + q.toString());
    if (!res.ok) return;
    lastTier = res.headers.get("X-Chart-Tier") || "";
    lastWidth = width;
    lastPlain = plainTier(width);
    box.innerHTML = await res.text();
  }

  function update() {
    const w = box.clientWidth;
    if (lastWidth === null || Math.abs(w - lastWidth) > cfg.threshold || plainTier(w) !== lastPlain) draw(w);
  }

  const observer = new ResizeObserver(function () {
    clearTimeout(timer);
    timer = setTimeout(update, cfg.debounceMs);
  });
  observer.observe(box);
  window.addEventListener("pagehide", function () { clearTimeout(timer); observer.disconnect(); });

  box.addEventListener("mouseover", function (e) {
    const n = e.target.closest("[data-project]");
    if (n && n.dataset.project !== hover) { hover = n.dataset.project; draw(lastWidth); }
  });
  box.addEventListener("mouseout", function (e) {
    const n = e.target.closest("[data-project]");
    if (n && !n.contains(e.relatedTarget)) { hover = ""; draw(lastWidth); }
  });

  setInterval(async function () {
    const res = await fetch("/__preview__/status");
    if (!res.ok) return;
    const st = await res.json();
    if (lastReloads >= 0 && st.reloads !== lastReloads && lastWidth !== null) draw(lastWidth);
    lastReloads = st.reloads;
  }, cfg.statusPollMs);

  update();
})();
</script>
</body>
</html>
`))

func (p *PreviewServer) indexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, defaultPageConfig()); err != nil {
		p.logger.Error("render index", "error", err)
	}
}
