package service

import (
	"net/url"
	"strconv"
)

// APIPrefix is where the camp routes are mounted.
const APIPrefix = "/api/v1"

func CampLocator(moniker string) string {
	return APIPrefix + "/camps/" + url.PathEscape(moniker)
}

func TalkLocator(moniker string, talkID int) string {
	return CampLocator(moniker) + "/talks/" + strconv.Itoa(talkID)
}

func SpeakerLocator(speakerID int) string {
	return APIPrefix + "/speakers/" + strconv.Itoa(speakerID)
}
