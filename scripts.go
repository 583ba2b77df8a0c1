package resumefit

import (
	"fmt"
	"strconv"
	"strings"
)

// In-page scripts. Each is a function expression evaluated by Page.Eval.
// Scripts that return a promise are awaited by the engine, so the auto-fit
// trigger deliberately discards the promise returned by fitToOnePage.
const (
	jsRendererReady = `() => window.isRendererReady === true`

	jsHasMarkdownLib = `() => !!window.markdownit`

	jsAck = `() => { window.postMessage({ type: 'ACK' }, '*'); return true; }`

	jsPDFOutput = `() => (window.ResumeConfig && window.ResumeConfig.pdfOutput) || {}`

	jsRenderComplete = `() => !!document.body && document.body.classList.contains('render-complete')`

	jsHTMLLength = `() => document.documentElement.outerHTML.length`

	jsDebugInfo = `() => {
  const bodyText = document.body.innerText || '';
  const content = document.getElementById('content');
  return {
    totalLength: bodyText.length,
    previewText: bodyText.substring(0, 200).replace(/\n/g, ' '),
    pageCount: document.querySelectorAll('.pagedjs_page').length,
    contentHtmlLength: content ? content.innerHTML.length : -1
  };
}`

	jsLayoutDebug = `() => {
  const rect = (el) => {
    if (!el) return null;
    const r = el.getBoundingClientRect();
    return { x: Math.round(r.x), y: Math.round(r.y), w: Math.round(r.width), h: Math.round(r.height) };
  };
  const root = document.documentElement;
  const content = document.getElementById('content');
  const pagedPage = document.querySelector('.pagedjs_page');
  const pagedBox = document.querySelector('.pagedjs_pagebox');
  const pageRules = [];
  for (const sheet of Array.from(document.styleSheets || [])) {
    let rules;
    try { rules = sheet.cssRules; } catch (e) { continue; }
    for (const rule of Array.from(rules || [])) {
      if (rule && rule.type === 6) pageRules.push(rule.cssText);
    }
  }
  const csRoot = getComputedStyle(root);
  const csBody = getComputedStyle(document.body);
  const csBox = pagedBox ? getComputedStyle(pagedBox) : null;
  return {
    viewport: { w: window.innerWidth, h: window.innerHeight, dpr: window.devicePixelRatio },
    cssVars: {
      pageMargin: csRoot.getPropertyValue('--page-margin').trim(),
      fontSize: csRoot.getPropertyValue('--body-font-size').trim(),
      lineHeight: csRoot.getPropertyValue('--line-height').trim(),
      headingScale: csRoot.getPropertyValue('--heading-scale').trim()
    },
    body: { margin: csBody.margin, padding: csBody.padding },
    pagedBox: csBox ? { padding: csBox.padding, margin: csBox.margin } : null,
    contentRect: rect(content),
    pagedPageRect: rect(pagedPage),
    pagedBoxRect: rect(pagedBox),
    pageRules: pageRules
  };
}`

	jsAutoFitCompleted = `() => !!window.autoFitResult || document.body.classList.contains('autofit-complete')`

	jsAutoFitMarker = `() => document.body.classList.contains('autofit-complete')`

	jsPagedPageCount = `() => document.querySelectorAll('.pagedjs_page').length`

	jsContentScrollHeight = `() => {
  const el = document.getElementById('content') || document.querySelector('.page');
  return el ? el.scrollHeight : -1;
}`

	jsIsSparse = `() => {
  const v = window.simpleViewer;
  if (!v || typeof v.checkContentFill !== 'function') return false;
  const fill = v.checkContentFill();
  return !!(fill && fill.isSparse);
}`

	jsTriggerAutoFit = `() => {
  const v = window.simpleViewer;
  if (!v || typeof v.fitToOnePage !== 'function') return false;
  v.fitToOnePage();
  return true;
}`

	jsIsAutoFitting = `() => !!(window.simpleViewer && window.simpleViewer.isAutoFitting)`

	jsAutoFitResult = `() => window.autoFitResult || null`

	jsMeasure = `() => {
  const pages = document.querySelectorAll('.pagedjs_page');
  if (pages.length > 0) {
    let fill = 1.0;
    const content = document.querySelector('.pagedjs_page_content');
    const box = document.querySelector('.pagedjs_pagebox');
    if (content && box && box.clientHeight > 0) {
      const nodes = content.querySelectorAll('*');
      if (nodes.length > 0) {
        const last = nodes[nodes.length - 1];
        fill = (last.getBoundingClientRect().bottom - content.getBoundingClientRect().top) / box.clientHeight;
      } else {
        fill = content.scrollHeight / box.clientHeight;
      }
    }
    return { found: true, paged: true, pageCount: pages.length, fill: fill };
  }
  const el = document.querySelector('#content') || document.querySelector('.page');
  if (!el) return { found: false };
  return { found: true, paged: false, scrollHeight: el.scrollHeight };
}`

	jsContentStats = `() => {
  const el = document.querySelector('#content');
  if (!el) return { found: false };
  return {
    found: true,
    text: el.innerText || '',
    h1: document.querySelectorAll('h1').length,
    h2: document.querySelectorAll('h2').length,
    li: document.querySelectorAll('li').length,
    p: document.querySelectorAll('p').length
  };
}`
)

// Prefixes of scripts built per call, exposed for matching in tests.
const (
	jsSetContentPrefix      = `() => { window.postMessage({ type: 'SET_CONTENT'`
	jsSparseThresholdPrefix = `() => { window.resumeFitSparseThreshold = `
)

// escapeTemplateLiteral makes s safe inside a JavaScript template literal.
// Backslashes go first so escapes already present in s survive unchanged.
func escapeTemplateLiteral(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "`", "\\`")
	s = strings.ReplaceAll(s, "${", `\${`)
	return s
}

// setContentScript builds the SET_CONTENT dispatch for markdown with an
// optional server-side HTML rendering the document may fall back to.
func setContentScript(markdown, fallbackHTML string) string {
	return fmt.Sprintf("%s, payload: { markdown: `%s`, html: `%s` } }, '*'); return true; }",
		jsSetContentPrefix, escapeTemplateLiteral(markdown), escapeTemplateLiteral(fallbackHTML))
}

func sparseThresholdScript(v float64) string {
	return jsSparseThresholdPrefix + strconv.FormatFloat(v, 'f', -1, 64) + `; return true; }`
}
