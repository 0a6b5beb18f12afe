// Package receiver is a reference implementation of the desktop side.
//
// It accepts the three sender calls:
//
//	POST /play       form body url=<encoded>&device=<name>, starts the player
//	POST /test       empty body, answers 200 when reachable
//	POST /testVideo  empty body, plays a fixed sample video
//
// Any other method on these paths gets 405 and any other path 404.
// Sender identity arrives in the X-Device-Name, X-Device-Model and
// X-Device-Android headers and is logged.
//
// Playback goes through a Player. MPV starts an external mpv process and
// returns without waiting for it; DryRun only records the URLs.
//
// With Advertise set, the receiver registers itself over mDNS so senders
// can find it with the discovery package. The HTTP listener and the
// advertisement run together and stop together.
package receiver
