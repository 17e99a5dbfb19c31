package common

import (
	"testing"
	"time"

	"github.com/PancyStudios/ToothlessGo/pkg/models"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1.000"},
		{123456, "123.456"},
		{1234567, "1.234.567"},
		{-2500, "-2.500"},
	}
	for _, tt := range tests {
		if got := FormatAmount(tt.in); got != tt.want {
			t.Errorf("FormatAmount(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "1s"},
		{40 * time.Second, "40s"},
		{12 * time.Minute, "12m"},
		{59*time.Minute + 59*time.Second, "59m"},
		{3*time.Hour + 12*time.Minute, "3h 12m"},
		{23*time.Hour + 59*time.Minute, "23h 59m"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.in); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMentions(t *testing.T) {
	if got := ChannelMention(nil); got != NotSet {
		t.Errorf("ChannelMention(nil) = %q", got)
	}
	if got := ChannelMention(models.StringPtr("123")); got != "<#123>" {
		t.Errorf("ChannelMention() = %q", got)
	}
	if got := RoleMention(models.StringPtr("9")); got != "<@&9>" {
		t.Errorf("RoleMention() = %q", got)
	}
}

func TestMoney(t *testing.T) {
	if got := Money(1500, ""); got != "`1.500` 🪙" {
		t.Errorf("Money() = %q", got)
	}
	if got := Money(3, "💎"); got != "`3` 💎" {
		t.Errorf("Money() = %q", got)
	}
}
