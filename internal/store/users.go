package store

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sort"
	"time"
)

// ErrInvalidCredentials is returned when a username exists but the
// password does not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// HashPassword is the hex SHA-256 digest stored in user records.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Register creates the account if it does not exist, otherwise
// authenticates against the stored hash.
func Register(s Store, username, password string) (*User, error) {
	u, ok, err := s.User(username)
	if err != nil {
		return nil, err
	}
	if ok {
		if u.PasswordHash != HashPassword(password) {
			return nil, ErrInvalidCredentials
		}
		return u, nil
	}
	u = &User{
		Username:     username,
		PasswordHash: HashPassword(password),
		CreatedAt:    time.Now(),
	}
	if err := s.SaveUser(u); err != nil {
		return nil, err
	}
	return u, nil
}

// RecordResult updates both players' stats after a finished game:
// +100 points for the winner, -50 (floored at zero) for the loser.
func RecordResult(s Store, winner, loser string) error {
	if err := recordOne(s, winner, true); err != nil {
		return err
	}
	return recordOne(s, loser, false)
}

func recordOne(s Store, username string, won bool) error {
	u, ok, err := s.User(username)
	if err != nil || !ok {
		return err
	}
	if won {
		u.Wins++
		u.Points += 100
	} else {
		u.Losses++
		u.Points -= 50
		if u.Points < 0 {
			u.Points = 0
		}
	}
	return s.SaveUser(u)
}

// RankRow is one line of the public leaderboard.
type RankRow struct {
	Rank     int    `json:"rank"`
	Username string `json:"username"`
	Points   int    `json:"points"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
}

// Ranking returns the top ten players by points.
func Ranking(s Store) ([]RankRow, error) {
	users, err := s.Users()
	if err != nil {
		return nil, err
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].Points != users[j].Points {
			return users[i].Points > users[j].Points
		}
		return users[i].Username < users[j].Username
	})
	if len(users) > 10 {
		users = users[:10]
	}
	out := make([]RankRow, 0, len(users))
	for i, u := range users {
		out = append(out, RankRow{
			Rank:     i + 1,
			Username: u.Username,
			Points:   u.Points,
			Wins:     u.Wins,
			Losses:   u.Losses,
		})
	}
	return out, nil
}
