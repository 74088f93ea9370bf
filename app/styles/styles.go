// Package styles holds the app's base stylesheet. Importing it for
// side effects registers the sheet with pkg/styling, which is how the
// serve command assembles /styles.css.
package styles

import "github.com/nogginhq/noggin/pkg/styling"

func init() {
	styling.Register("noggin-base", baseCSS)
}

const baseCSS = `
:root {
	--bg: #0b0e14;
	--panel: #151a23;
	--border: #39424e;
	--text: #eaeef3;
	--muted: #8b96a5;
	--accent: #6ea8fe;
	--danger: #e5534b;
}

* { box-sizing: border-box; }

body {
	margin: 0;
	background: var(--bg);
	color: var(--text);
	font-family: system-ui, sans-serif;
}

.app-shell { display: flex; flex-direction: column; min-height: 100vh; }

.topbar {
	display: flex;
	align-items: center;
	justify-content: space-between;
	padding: 0.75rem 1.5rem;
	background: var(--panel);
	border-bottom: 1px solid var(--border);
}

.brand { font-size: 1.25rem; font-weight: 700; color: var(--accent); text-decoration: none; }

.topbar-links { display: flex; align-items: center; }

.nav-link { color: var(--muted); text-decoration: none; margin-left: 1rem; }
.nav-link:hover, .nav-link-active { color: var(--text); }

.page { flex: 1; display: flex; flex-direction: column; padding: 1.5rem; }
.page-title { margin: 0 0 1rem; }

.collection-grid {
	display: grid;
	grid-template-columns: repeat(auto-fill, minmax(260px, 1fr));
	gap: 1rem;
}

.card-link { text-decoration: none; color: inherit; }

.card {
	background: var(--panel);
	border: 1px solid var(--border);
	border-radius: 8px;
	padding: 1rem;
}
.card-clickable:hover, .card-link:hover .card { border-color: var(--accent); }
.card-header { margin-bottom: 0.25rem; }
.card-title { margin: 0; }
.card-subtitle { margin: 0.25rem 0 0; color: var(--muted); font-size: 0.875rem; }
.card-body { margin-top: 0.75rem; }
.card-footer { margin-top: 0.75rem; border-top: 1px solid var(--border); padding-top: 0.75rem; }
.card-cta { color: var(--accent); font-size: 0.875rem; }

.btn {
	border: 1px solid var(--border);
	border-radius: 6px;
	padding: 0.4rem 0.9rem;
	font-size: 0.875rem;
	cursor: pointer;
	background: var(--accent);
	color: var(--bg);
}
.btn-secondary { background: var(--panel); color: var(--text); }
.btn-danger { background: var(--danger); color: var(--text); }
.btn-ghost { background: transparent; color: var(--muted); border-color: transparent; }
.btn:disabled { opacity: 0.5; cursor: default; }

.map-header { display: flex; align-items: center; justify-content: space-between; }
.map-toolbar { display: flex; gap: 0.5rem; }
.map-surface {
	position: relative;
	flex: 1;
	min-height: 480px;
	border: 1px solid var(--border);
	border-radius: 8px;
	overflow: hidden;
}
.map-overlay {
	position: absolute;
	inset: 0;
	display: flex;
	align-items: center;
	justify-content: center;
	background: rgba(11, 14, 20, 0.6);
}

.mindmap-viewer { width: 100%; height: 100%; }

.empty-state {
	display: flex;
	flex-direction: column;
	align-items: center;
	gap: 1rem;
	color: var(--muted);
	padding: 3rem 1rem;
	text-align: center;
}

.error-banner {
	display: flex;
	align-items: center;
	justify-content: space-between;
	background: rgba(229, 83, 75, 0.15);
	border: 1px solid var(--danger);
	border-radius: 6px;
	padding: 0.5rem 0.75rem;
	margin-bottom: 1rem;
}
.banner-dismiss { background: none; border: none; color: var(--text); cursor: pointer; font-size: 1rem; }

.spinner { display: flex; align-items: center; gap: 0.5rem; color: var(--muted); justify-content: center; padding: 2rem; }
.spinner-svg { animation: spin 0.8s linear infinite; }
.spinner-text { font-size: 0.875rem; }
@keyframes spin { to { transform: rotate(360deg); } }
`
