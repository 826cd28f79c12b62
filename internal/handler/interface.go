package handler

import (
	"net/http"
)

// ConsoleHandlerInterface defines the contract for the console's page
// handlers. The router depends on it rather than on Handler.
type ConsoleHandlerInterface interface {
	// Session
	LoginPage(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	ConfirmLogout(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	PasswordDialog(w http.ResponseWriter, r *http.Request)
	ChangePassword(w http.ResponseWriter, r *http.Request)

	// Home
	Home(w http.ResponseWriter, r *http.Request)
	ConfirmMyAssignment(w http.ResponseWriter, r *http.Request)
	RespondMyAssignment(w http.ResponseWriter, r *http.Request)

	// Assets
	ListAssets(w http.ResponseWriter, r *http.Request)
	ShowAsset(w http.ResponseWriter, r *http.Request)
	NewAsset(w http.ResponseWriter, r *http.Request)
	CreateAsset(w http.ResponseWriter, r *http.Request)
	EditAsset(w http.ResponseWriter, r *http.Request)
	UpdateAsset(w http.ResponseWriter, r *http.Request)
	ConfirmDeleteAsset(w http.ResponseWriter, r *http.Request)
	DeleteAsset(w http.ResponseWriter, r *http.Request)

	// Users
	ListUsers(w http.ResponseWriter, r *http.Request)
	ShowUser(w http.ResponseWriter, r *http.Request)
	NewUser(w http.ResponseWriter, r *http.Request)
	CreateUser(w http.ResponseWriter, r *http.Request)
	CreatedUser(w http.ResponseWriter, r *http.Request)
	EditUser(w http.ResponseWriter, r *http.Request)
	UpdateUser(w http.ResponseWriter, r *http.Request)
	ConfirmDisableUser(w http.ResponseWriter, r *http.Request)
	DisableUser(w http.ResponseWriter, r *http.Request)

	// Assignments
	ListAssignments(w http.ResponseWriter, r *http.Request)
	ShowAssignment(w http.ResponseWriter, r *http.Request)
	NewAssignment(w http.ResponseWriter, r *http.Request)
	CreateAssignment(w http.ResponseWriter, r *http.Request)
	EditAssignment(w http.ResponseWriter, r *http.Request)
	UpdateAssignment(w http.ResponseWriter, r *http.Request)
	ConfirmDeleteAssignment(w http.ResponseWriter, r *http.Request)
	DeleteAssignment(w http.ResponseWriter, r *http.Request)
	ConfirmReturnAssignment(w http.ResponseWriter, r *http.Request)
	ReturnAssignment(w http.ResponseWriter, r *http.Request)
	PickUser(w http.ResponseWriter, r *http.Request)
	PickAsset(w http.ResponseWriter, r *http.Request)

	// Returning requests
	ListReturningRequests(w http.ResponseWriter, r *http.Request)
	ConfirmCompleteReturning(w http.ResponseWriter, r *http.Request)
	CompleteReturning(w http.ResponseWriter, r *http.Request)
	ConfirmCancelReturning(w http.ResponseWriter, r *http.Request)
	CancelReturning(w http.ResponseWriter, r *http.Request)

	// Report
	Report(w http.ResponseWriter, r *http.Request)
	ExportReport(w http.ResponseWriter, r *http.Request)
}

// Ensure Handler implements ConsoleHandlerInterface at compile time
var _ ConsoleHandlerInterface = (*Handler)(nil)
