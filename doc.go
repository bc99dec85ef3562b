// Package yuletide is a real-time particle scene for [Ebitengine] and the
// terminal: a slowly rotating Christmas tree built from thousands of points,
// projected with a simple perspective, over a night sky with snow, stars,
// fireworks, a village and the occasional shooting star.
//
// # Quick start
//
// [NewScene] builds the standard layered scene and [Run] opens a window
// for it:
//
//	scene, err := yuletide.NewScene(yuletide.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	yuletide.Run(scene, yuletide.RunConfig{Width: 1280, Height: 720})
//
// The term subpackage drives the same scene on a tcell screen, and the
// jingle subpackage plays the tune the music toggle refers to.
//
// # Engines and layers
//
// Each animated population is an [Engine]: it is resized, advanced one
// frame at a time and drawn onto a [Surface]. The [Scheduler] owns an
// ordered list of named [Layer]s, each pairing an engine with its own
// surface plus the alpha and [BlendMode] the backend composites it with.
// Engines implementing [Themed] rebuild themselves on [Scheduler.SetMode];
// engines implementing [Speeder] follow [Scheduler.SetFast].
//
// A panic inside an engine callback is recovered and logged through zap;
// the rest of the frame still renders.
//
// # Tree
//
// [TreeEngine] partitions its population into foliage, ribbon, core,
// orbiter and dust roles ([RoleCounts]) and generates it with
// [GenerateField]. Every frame it rotates the cloud around the vertical
// axis, sorts it back to front and projects each point with
//
//	scale = f / (f + z + f)
//
// where f is [Config.FocalLength]. The apex star and the floor glow breathe
// with the same sine factor.
//
// # Determinism
//
// Every engine draws its randomness from a [Rand]. Pass a seeded source with
// [WithRand] (or set [Config.Seed]) and a [ManualClock] with [WithClock] to
// replay a scene exactly, which is what the tests and [Script] captures do.
//
// [Ebitengine]: https://ebitengine.org
package yuletide
