package useragent

import (
	"fmt"
	"os"
	"strings"

	"github.com/ua-parser/uap-go/uaparser"
	"go.uber.org/zap"
)

// Device types stored on click records.
const (
	DeviceDesktop = "desktop"
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceBot     = "bot"
	DeviceUnknown = "unknown"
)

// Parser classifies User-Agent strings by device type.
type Parser struct {
	parser *uaparser.Parser
	log    *zap.Logger
}

// DeviceInfo represents parsed device information
type DeviceInfo struct {
	DeviceType string
	Browser    string
	OS         string
}

var botIndicators = []string{
	"googlebot", "bingbot", "slurp", "duckduckbot", "baiduspider",
	"yandexbot", "facebookexternalhit", "twitterbot", "linkedinbot",
	"slackbot", "discordbot", "whatsapp", "telegram", "skypeuripreview",
	"bot", "crawler", "spider", "scraper", "headless",
}

// NewParser загружает регулярные выражения из regexesPath. Если файла нет,
// используется встроенный набор uap-go.
func NewParser(regexesPath string, log *zap.Logger) (*Parser, error) {
	if regexesPath == "" {
		return &Parser{parser: uaparser.NewFromSaved(), log: log}, nil
	}

	if _, err := os.Stat(regexesPath); os.IsNotExist(err) {
		log.Warn("regexes file not found, using bundled definitions", zap.String("regexes_file", regexesPath))
		return &Parser{parser: uaparser.NewFromSaved(), log: log}, nil
	}

	regexBytes, err := os.ReadFile(regexesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read regexes file: %w", err)
	}

	parser, err := uaparser.NewFromBytes(regexBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to create User-Agent parser: %w", err)
	}

	log.Info("User-Agent parser initialized", zap.String("regexes_file", regexesPath))
	return &Parser{parser: parser, log: log}, nil
}

// DeviceType returns one of the Device* constants.
func (p *Parser) DeviceType(userAgent string) string {
	return p.Parse(userAgent).DeviceType
}

// Parse parses a User-Agent string into device information.
func (p *Parser) Parse(userAgent string) DeviceInfo {
	if strings.TrimSpace(userAgent) == "" {
		return DeviceInfo{DeviceType: DeviceUnknown, Browser: DeviceUnknown, OS: DeviceUnknown}
	}

	client := p.parser.Parse(userAgent)
	info := DeviceInfo{
		DeviceType: classify(client, userAgent),
		Browser:    family(client.UserAgent.Family),
		OS:         family(client.Os.Family),
	}

	p.log.Debug("parsed User-Agent",
		zap.String("device_type", info.DeviceType),
		zap.String("browser", info.Browser),
		zap.String("os", info.OS))

	return info
}

// IsBot reports whether the User-Agent belongs to a crawler or link previewer.
func IsBot(userAgent string) bool {
	return containsAny(strings.ToLower(userAgent), botIndicators)
}

func classify(client *uaparser.Client, userAgent string) string {
	ua := strings.ToLower(userAgent)
	if IsBot(userAgent) || strings.EqualFold(client.Device.Family, "Spider") {
		return DeviceBot
	}

	device := strings.ToLower(client.Device.Family)
	if device != "" && device != "other" {
		if containsAny(device, []string{"ipad", "tablet", "kindle", "surface"}) {
			return DeviceTablet
		}
		if containsAny(device, []string{"iphone", "android", "blackberry", "windows phone", "mobile", "phone"}) {
			return DeviceMobile
		}
	}

	osFamily := strings.ToLower(client.Os.Family)
	switch {
	case strings.Contains(osFamily, "ios"):
		if strings.Contains(ua, "ipad") {
			return DeviceTablet
		}
		return DeviceMobile
	case strings.Contains(osFamily, "android"):
		// планшеты на Android не пишут "Mobile"
		if !strings.Contains(ua, "mobile") {
			return DeviceTablet
		}
		return DeviceMobile
	case containsAny(osFamily, []string{"windows phone", "blackberry", "firefox os", "sailfish"}):
		return DeviceMobile
	case containsAny(osFamily, []string{"windows", "mac os x", "macos", "linux", "ubuntu", "chrome os", "freebsd", "openbsd", "netbsd"}):
		return DeviceDesktop
	}

	return DeviceUnknown
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func family(s string) string {
	if s == "" || s == "Other" {
		return DeviceUnknown
	}
	return s
}
