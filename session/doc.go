// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session holds the per-run state of the terminal flow and its
input/output helpers.

A Screen reads from and prints to the Session, then names the screen to
show next:

	func(ctx context.Context, s *session.Session) (string, error)

Ask reads one line, Choose and Menu read a numbered pick. End of input is
reported as ErrClosed, which ends the run. Notify prints a notification as

	[ERROR] JSON Error: <message>
*/
package session
