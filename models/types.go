// File: /models/types.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringSet is a custom type for handling JSON arrays of ids in the database.
// Entries keep insertion order and are never duplicated.
type StringSet []string

// Contains reports whether id is a member of the set.
func (ss StringSet) Contains(id string) bool {
	for _, v := range ss {
		if v == id {
			return true
		}
	}
	return false
}

// Add appends id to the set if it is not already present.
func (ss StringSet) Add(id string) StringSet {
	if ss.Contains(id) {
		return ss
	}
	return append(ss, id)
}

// Remove deletes id from the set. Removing an absent id is a no-op.
func (ss StringSet) Remove(id string) StringSet {
	out := ss[:0]
	for _, v := range ss {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// Value implements driver.Valuer interface for database storage
func (ss StringSet) Value() (driver.Value, error) {
	if ss == nil {
		return nil, nil
	}
	return json.Marshal(ss)
}

// Scan implements sql.Scanner interface for database retrieval
func (ss *StringSet) Scan(value interface{}) error {
	if value == nil {
		*ss = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, ss)
	case string:
		return json.Unmarshal([]byte(v), ss)
	default:
		return fmt.Errorf("cannot scan %T into StringSet", value)
	}
}

// GormDataType returns the data type for GORM
func (StringSet) GormDataType() string {
	return "json"
}

// MarshalJSON implements json.Marshaler interface
func (ss StringSet) MarshalJSON() ([]byte, error) {
	if ss == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(ss))
}

// UnmarshalJSON implements json.Unmarshaler interface
func (ss *StringSet) UnmarshalJSON(data []byte) error {
	var slice []string
	if err := json.Unmarshal(data, &slice); err != nil {
		return err
	}
	*ss = StringSet(slice)
	return nil
}

// ReadEntry is a single visit in a user's reading history.
type ReadEntry struct {
	BlogID string    `json:"blog_id"`
	ReadAt time.Time `json:"read_at"`
}

// ReadingHistory is a bounded, deduplicated recency list stored as a JSON
// column. The most recent entry is first; re-reading a blog moves its entry
// back to the front instead of duplicating it.
type ReadingHistory []ReadEntry

// ReadingHistoryLimit caps how many entries a user's history retains.
const ReadingHistoryLimit = 50

// Record moves-or-inserts blogID to the front with the given timestamp and
// drops entries beyond ReadingHistoryLimit from the tail.
func (h ReadingHistory) Record(blogID string, at time.Time) ReadingHistory {
	out := make(ReadingHistory, 0, len(h)+1)
	out = append(out, ReadEntry{BlogID: blogID, ReadAt: at})
	for _, e := range h {
		if e.BlogID != blogID {
			out = append(out, e)
		}
	}
	if len(out) > ReadingHistoryLimit {
		out = out[:ReadingHistoryLimit]
	}
	return out
}

// Value implements driver.Valuer interface for database storage
func (h ReadingHistory) Value() (driver.Value, error) {
	if h == nil {
		return nil, nil
	}
	return json.Marshal(h)
}

// Scan implements sql.Scanner interface for database retrieval
func (h *ReadingHistory) Scan(value interface{}) error {
	if value == nil {
		*h = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, h)
	case string:
		return json.Unmarshal([]byte(v), h)
	default:
		return fmt.Errorf("cannot scan %T into ReadingHistory", value)
	}
}

// GormDataType returns the data type for GORM
func (ReadingHistory) GormDataType() string {
	return "json"
}

// MarshalJSON implements json.Marshaler interface
func (h ReadingHistory) MarshalJSON() ([]byte, error) {
	if h == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]ReadEntry(h))
}

// Comment is a single comment embedded in a blog aggregate.
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentList is an insertion-ordered, append-only comment sequence stored
// as a JSON column on the blog row.
type CommentList []Comment

// Value implements driver.Valuer interface for database storage
func (cl CommentList) Value() (driver.Value, error) {
	if cl == nil {
		return nil, nil
	}
	return json.Marshal(cl)
}

// Scan implements sql.Scanner interface for database retrieval
func (cl *CommentList) Scan(value interface{}) error {
	if value == nil {
		*cl = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, cl)
	case string:
		return json.Unmarshal([]byte(v), cl)
	default:
		return fmt.Errorf("cannot scan %T into CommentList", value)
	}
}

// GormDataType returns the data type for GORM
func (CommentList) GormDataType() string {
	return "json"
}

// MarshalJSON implements json.Marshaler interface
func (cl CommentList) MarshalJSON() ([]byte, error) {
	if cl == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Comment(cl))
}
