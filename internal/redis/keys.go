package redis

import "fmt"

const ns = "shootplan:v1"

func KeyDayBookings(day string) string {
	return fmt.Sprintf("%s:bookings:day:%s", ns, day)
}

// KeyDayGeneration counts invalidations of a day's snapshot.
func KeyDayGeneration(day string) string {
	return fmt.Sprintf("%s:bookings:day:%s:gen", ns, day)
}

func KeyPhotographers() string {
	return ns + ":photographers"
}

func KeyRateLimit(scope, id string) string {
	return fmt.Sprintf("%s:rl:%s:%s", ns, scope, id)
}

func ChannelSessions() string {
	return ns + ":sessions"
}

func KeyIdem(scope, idemKey string) string {
	return fmt.Sprintf("%s:idem:%s:%s", ns, scope, idemKey)
}
