// CLAUDE:SUMMARY JavaScript builders for the click, scroll, and type routines executed on the surface.
package actions

import (
	"encoding/json"
	"fmt"
)

// clickScript finds the topmost element at a pixel point and clicks it.
// The native click is best-effort with errors swallowed; the synthetic
// pointer/mouse sequence covers handlers that never listen for the
// semantic click event. The script reports whether an element was found,
// not whether any handler did something useful.
func clickScript(px, py float64) string {
	return fmt.Sprintf(`() => {
	const x = %.2f, y = %.2f;
	const el = document.elementFromPoint(x, y);
	if (!el) return false;
	try { el.click(); } catch (e) {}
	for (const type of ["pointerdown", "mousedown", "mouseup", "click"]) {
		try {
			const init = {bubbles: true, cancelable: true, clientX: x, clientY: y};
			const ev = type === "pointerdown" ? new PointerEvent(type, init) : new MouseEvent(type, init);
			el.dispatchEvent(ev);
		} catch (e) {}
	}
	return true;
}`, px, py)
}

// scrollScript scrolls the window vertically by deltaY pixels.
func scrollScript(deltaY float64) string {
	return fmt.Sprintf(`() => { window.scrollBy(0, %.2f); }`, deltaY)
}

// typeScript appends text to the best typing target: the focused element
// unless it is the body, else the topmost element at viewport center,
// else the topmost focusable element near the top center. Synthetic
// input/change events keep framework bindings in sync with the value.
func typeScript(text string) (string, error) {
	lit, err := json.Marshal(text)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`() => {
	let el = document.activeElement;
	if (!el || el === document.body) {
		let candidate = document.elementFromPoint(window.innerWidth / 2, window.innerHeight / 2);
		if (!candidate || typeof candidate.focus !== "function") {
			candidate = document.elementFromPoint(window.innerWidth / 2, 20);
		}
		if (candidate && typeof candidate.focus === "function") {
			candidate.focus();
			el = candidate;
		} else {
			el = null;
		}
	}
	if (!el || el.value === undefined) return false;
	el.value = el.value + %s;
	el.dispatchEvent(new Event('input', {bubbles: true}));
	el.dispatchEvent(new Event('change', {bubbles: true}));
	return true;
}`, lit), nil
}
