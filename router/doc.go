// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router wires handlers into the screen flow.

# Screens

	landing        SurveyHandler.Landing
	intake         SurveyHandler.Intake
	questionnaire  SurveyHandler.Questionnaire
	login          AdminHandler.Login
	dashboard      AdminHandler.Dashboard  (admin only)
	analysis       AdminHandler.Analysis   (admin only)
	export         AdminHandler.Export     (admin only)

Every screen is wrapped with middleware.WithLogging; admin screens are also
wrapped with middleware.RequireAdmin.

# Running

	r := router.NewRouter(st, cfg, questionnaire)
	err := r.Run(ctx, session.New(os.Stdin, os.Stdout))

Run starts at the landing screen and follows the screen names returned by
each screen until "exit". It returns nil when the user quits or the input
ends, and the context error when ctx is cancelled between screens.
*/
package router
