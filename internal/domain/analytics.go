package domain

// DashboardOverview summarizes an agent's book of business.
type DashboardOverview struct {
	TotalClients         int     `json:"totalClients"`
	NewClientsThisMonth  int     `json:"newClientsThisMonth"`
	ActivePolicies       int     `json:"activePolicies"`
	ExpiringPolicies     int     `json:"expiringPolicies"`
	TodayAppointments    int     `json:"todayAppointments"`
	UpcomingAppointments int     `json:"upcomingAppointments"`
	PendingReminders     int     `json:"pendingReminders"`
	OverdueReminders     int     `json:"overdueReminders"`
	TotalPremium         float64 `json:"totalPremium"`
	UpcomingBirthdays    int     `json:"upcomingBirthdays"`
}

// CountBucket is a labelled count used by breakdowns.
type CountBucket struct {
	Label string  `json:"label"`
	Count int     `json:"count"`
	Value float64 `json:"value,omitempty"`
}

// AppointmentAnalytics breaks down appointments over a date range.
type AppointmentAnalytics struct {
	StartDate      Date          `json:"startDate"`
	EndDate        Date          `json:"endDate"`
	Total          int           `json:"total"`
	CompletionRate float64       `json:"completionRate"`
	ByStatus       []CountBucket `json:"byStatus"`
	ByType         []CountBucket `json:"byType"`
	ByDay          []CountBucket `json:"byDay"`
}

// PolicyAnalytics breaks down policies by type and status.
type PolicyAnalytics struct {
	ByType    []CountBucket `json:"byType"`
	ByStatus  []CountBucket `json:"byStatus"`
	ByCompany []CountBucket `json:"byCompany"`
}
