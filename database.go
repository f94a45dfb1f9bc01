package main

import (
	"encoding/json"
	"sort"
	"strconv"
	"time"

	badger "github.com/dgraph-io/badger/v4"
)

const dateLayout = "2006-01-02"

func sessionKey(chatID int64) []byte {
	return []byte("session/" + itoa(chatID))
}

func editKey(chatID int64) []byte {
	return []byte("edit/" + itoa(chatID))
}

func loadKey(id string) []byte {
	return []byte("load/" + id)
}

func getJSON(key []byte, v any) (bool, error) {
	err := db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
	if err == badger.ErrKeyNotFound {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return true, nil
}

func putJSON(key []byte, v any) error {
	jsn, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, jsn)
	})
}

func deleteKey(key []byte) error {
	return db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

// ---- submission sessions ----

func putSession(s Session) error {
	s.UpdatedAt = time.Now()
	return putJSON(sessionKey(s.ChatID), s)
}

func getSession(chatID int64) (Session, bool, error) {
	var s Session
	found, err := getJSON(sessionKey(chatID), &s)
	return s, found, err
}

func deleteSession(chatID int64) error {
	return deleteKey(sessionKey(chatID))
}

// ---- edit sessions ----

func putEditSession(s EditSession) error {
	s.UpdatedAt = time.Now()
	return putJSON(editKey(s.ChatID), s)
}

func getEditSession(chatID int64) (EditSession, bool, error) {
	var s EditSession
	found, err := getJSON(editKey(chatID), &s)
	return s, found, err
}

func deleteEditSession(chatID int64) error {
	return deleteKey(editKey(chatID))
}

// ---- loads ----

func insertLoad(l Load) error {
	return putJSON(loadKey(l.ID), l)
}

func getLoad(id string) (Load, bool, error) {
	var l Load
	found, err := getJSON(loadKey(id), &l)
	return l, found, err
}

// updateLoad applies a partial update to one stored load. Only the
// fields set in the update are written, everything else is preserved.
func updateLoad(id string, u LoadUpdate) (Load, error) {
	var l Load
	err := db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(loadKey(id))
		if err != nil {
			return err
		}
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &l)
		}); err != nil {
			return err
		}

		if u.PickupZip != nil {
			l.PickupZip = *u.PickupZip
		}
		if u.DeliveryZip != nil {
			l.DeliveryZip = *u.DeliveryZip
		}
		if u.TotalMiles != nil {
			l.TotalMiles = *u.TotalMiles
		}
		if u.Rate != nil {
			l.Rate = *u.Rate
		}
		if u.RPMTotal != nil {
			l.RPMTotal = *u.RPMTotal
		}
		if u.Trailer != nil {
			l.Trailer = *u.Trailer
		}
		if u.Comment != nil {
			l.Comment = *u.Comment
		}

		jsn, err := json.Marshal(l)
		if err != nil {
			return err
		}
		return txn.Set(loadKey(id), jsn)
	})
	if err != nil {
		return Load{}, err
	}
	return l, nil
}

func queryLoads(match func(Load) bool) ([]Load, error) {
	var loads []Load
	prefix := []byte("load/")

	err := db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var l Load
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &l)
			}); err != nil {
				return err
			}
			if match == nil || match(l) {
				loads = append(loads, l)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loads, nil
}

// loadsInRange returns loads whose date falls in [start, end], both
// inclusive and truncated to calendar days. Empty userID matches all
// users. The period is always anchored to the moment of the request,
// never to the record's own date.
func loadsInRange(userID string, start, end time.Time) ([]Load, error) {
	startDay := truncateToDay(start)
	endDay := truncateToDay(end)

	return queryLoads(func(l Load) bool {
		if userID != "" && l.UserID != userID {
			return false
		}
		d, err := time.ParseInLocation(dateLayout, l.Date, time.Local)
		if err != nil {
			return false
		}
		return !d.Before(startDay) && !d.After(endDay)
	})
}

// recentUserLoads returns the user's most recent loads, newest first.
func recentUserLoads(userID string, limit int) ([]Load, error) {
	loads, err := queryLoads(func(l Load) bool {
		return l.UserID == userID
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(loads, func(i, j int) bool {
		return loads[i].CreatedAt.After(loads[j].CreatedAt)
	})
	if len(loads) > limit {
		loads = loads[:limit]
	}
	return loads, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
