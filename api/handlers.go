package api

import (
	"github.com/rpupo63/portfolio-backend/database"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, uploader imageStorage, notifier ownerNotifier) *routeHandlers {
	return &routeHandlers{
		projectHandler:  newProjectHandler(database.ProjectRepo(), uploader),
		feedbackHandler: newFeedbackHandler(database.FeedbackRepo()),
		contactHandler:  newContactHandler(database.ContactMessageRepo(), notifier),
	}
}
