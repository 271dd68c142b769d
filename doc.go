// Package ossim provides a small operating system simulator.
//
// The simulator multiplexes processes over a single simulated CPU with a
// round-robin scheduler, hands out fixed-size memory frames, keeps files on a
// flat virtual disk and exposes all of it through an interactive shell:
//
//	srv, _ := ossim.New()
//	rt := srv.Runtime()
//	_ = rt.Start(ctx)
//	defer rt.Shutdown(ctx)
//	proc, _ := rt.RunProgram(ctx, program.Echo("p1", 4))
//
// Instructions are service methods registered with the extension registry,
// so hosts can add their own with WithExtensionServices.
package ossim
