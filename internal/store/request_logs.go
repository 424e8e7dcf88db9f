// ABOUTME: Request log storage operations.
// ABOUTME: Handles inserting and querying manifest service request logs.

package store

import "time"

// RequestLog represents an HTTP request log entry
type RequestLog struct {
	ID         int64
	Timestamp  time.Time
	Resource   string // page resource the request addressed, "" for app-level routes
	Method     string
	Path       string
	StatusCode int
	DurationMs int
	IPAddress  string
	UserAgent  string
}

// LogRequest inserts a request log entry
func (s *Store) LogRequest(log *RequestLog) error {
	_, err := s.db.Exec(`
		INSERT INTO request_logs (resource, method, path, status_code, duration_ms, ip_address, user_agent)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, log.Resource, log.Method, log.Path, log.StatusCode, log.DurationMs, log.IPAddress, log.UserAgent)
	return err
}

// RequestLogQuery filters RecentRequests.
type RequestLogQuery struct {
	Limit     int
	Resource  string // empty matches all
	MinStatus int    // e.g. 400 for errors only
}

// RecentRequests returns request logs, newest first.
func (s *Store) RecentRequests(q RequestLogQuery) ([]*RequestLog, error) {
	query := `SELECT id, timestamp, COALESCE(resource, ''), method, path, status_code, duration_ms,
	          COALESCE(ip_address, ''), COALESCE(user_agent, '')
	          FROM request_logs WHERE 1=1`
	var args []any

	if q.Resource != "" {
		query += " AND resource = ?"
		args = append(args, q.Resource)
	}
	if q.MinStatus > 0 {
		query += " AND status_code >= ?"
		args = append(args, q.MinStatus)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 50
	}
	query += " ORDER BY timestamp DESC, id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*RequestLog
	for rows.Next() {
		log := &RequestLog{}
		if err := rows.Scan(&log.ID, &log.Timestamp, &log.Resource, &log.Method, &log.Path, &log.StatusCode,
			&log.DurationMs, &log.IPAddress, &log.UserAgent); err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

// CountRequests returns the number of logged requests per resource.
func (s *Store) CountRequests() (map[string]int, error) {
	rows, err := s.db.Query(`SELECT COALESCE(resource, ''), COUNT(*) FROM request_logs GROUP BY resource`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var resource string
		var n int
		if err := rows.Scan(&resource, &n); err != nil {
			return nil, err
		}
		counts[resource] = n
	}
	return counts, rows.Err()
}
