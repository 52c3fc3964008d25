package models

// ClientStats counts clients per display bucket.
type ClientStats struct {
	Confirmed    int `json:"confirmed"`
	NotConfirmed int `json:"notConfirmed"`
	Lost         int `json:"lost"`
}

// ProjectStats counts projects for the three statuses the dashboard
// shows. Projects in the two intermediate statuses are counted by the
// aggregate query but not exposed here.
type ProjectStats struct {
	InProgress       int `json:"in_progress"`
	WaitingForClient int `json:"waiting_for_client"`
	Completed        int `json:"completed"`
}

// DashboardStats is the aggregate served at /dashboard/stats.
type DashboardStats struct {
	Clients  ClientStats  `json:"clients"`
	Projects ProjectStats `json:"projects"`
}
