// Package browser drives an external browser through the two-phase token
// acquisition protocol.
//
// Phase one launches a headless session against the persistent profile
// directory: if a third-party session cookie from an earlier run is still
// warm, the token appears in local storage without any human interaction.
// Phase two, entered only when phase one produces nothing, opens a visible
// browser and waits for the operator to complete sign-in.
//
// Both phases poll the same well-known local-storage key at a fixed
// interval and are bounded by independent wall-clock deadlines. Every
// opened session is torn down when its phase exits, regardless of outcome.
//
// The Launcher and Session interfaces, together with the injectable clock,
// let tests exercise the timing behavior without ever starting a real
// browser. The one real implementation is backed by Playwright.
package browser
