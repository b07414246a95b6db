package entity

type NotificationPreferences struct {
	Email  bool `json:"email" yaml:"email"`
	Push   bool `json:"push" yaml:"push"`
	Digest bool `json:"digest" yaml:"digest"`
}

type UserProfile struct {
	Name          string                  `json:"name" yaml:"name"`
	Role          string                  `json:"role" yaml:"role"`
	Email         string                  `json:"email" yaml:"email"`
	AvatarURL     string                  `json:"avatarUrl" yaml:"avatarUrl"`
	Notifications NotificationPreferences `json:"notifications" yaml:"notifications"`
}

type AlertSettings struct {
	Enabled      bool `json:"enabled" yaml:"enabled"`
	Remind30     bool `json:"remind30" yaml:"remind30"`
	Remind7      bool `json:"remind7" yaml:"remind7"`
	WeeklyDigest bool `json:"weeklyDigest" yaml:"weeklyDigest"`
}

// Remind30Active and friends respect the master switch.
func (a AlertSettings) Remind30Active() bool {
	return a.Enabled && a.Remind30
}

func (a AlertSettings) Remind7Active() bool {
	return a.Enabled && a.Remind7
}

func (a AlertSettings) WeeklyDigestActive() bool {
	return a.Enabled && a.WeeklyDigest
}
