package app

import (
	"errors"
	"reflect"
	"testing"
)

func TestDetectClipboardPrefersPbcopyOnUnix(t *testing.T) {
	lookPath := func(cmd string) (string, error) {
		switch cmd {
		case "pbcopy":
			return "/usr/bin/pbcopy", nil
		case "xclip":
			return "/usr/bin/xclip", nil
		}
		return "", errors.New("not found")
	}
	args, ok := detectClipboardInternal("darwin", lookPath)
	if !ok {
		t.Fatalf("expected clipboard command")
	}
	expected := []string{"/usr/bin/pbcopy"}
	if !reflect.DeepEqual(args, expected) {
		t.Fatalf("expected %v, got %v", expected, args)
	}
}

func TestDetectClipboardSelectsXclipClipboard(t *testing.T) {
	lookPath := func(cmd string) (string, error) {
		if cmd == "xclip" {
			return "/usr/bin/xclip", nil
		}
		return "", errors.New("not found")
	}
	args, ok := detectClipboardInternal("linux", lookPath)
	if !ok {
		t.Fatalf("expected clipboard command")
	}
	expected := []string{"/usr/bin/xclip", "-selection", "clipboard"}
	if !reflect.DeepEqual(args, expected) {
		t.Fatalf("expected %v, got %v", expected, args)
	}
}

func TestDetectClipboardPrefersWlCopyOverX11(t *testing.T) {
	lookPath := func(cmd string) (string, error) {
		switch cmd {
		case "wl-copy":
			return "/usr/bin/wl-copy", nil
		case "xsel":
			return "/usr/bin/xsel", nil
		}
		return "", errors.New("not found")
	}
	args, _ := detectClipboardInternal("linux", lookPath)
	expected := []string{"/usr/bin/wl-copy"}
	if !reflect.DeepEqual(args, expected) {
		t.Fatalf("expected %v, got %v", expected, args)
	}
}

func TestDetectClipboardPrefersClipOnWindows(t *testing.T) {
	lookPath := func(cmd string) (string, error) {
		if cmd == "clip.exe" {
			return `C:\Windows\System32\clip.exe`, nil
		}
		return "", errors.New("not found")
	}
	args, ok := detectClipboardInternal("windows", lookPath)
	if !ok {
		t.Fatalf("expected clipboard command")
	}
	expected := []string{`C:\Windows\System32\clip.exe`}
	if !reflect.DeepEqual(args, expected) {
		t.Fatalf("expected %v, got %v", expected, args)
	}
}

func TestDetectClipboardFallsBackToPowershell(t *testing.T) {
	lookPath := func(cmd string) (string, error) {
		if cmd == "powershell" {
			return `C:\Windows\System32\WindowsPowerShell\v1.0\powershell.exe`, nil
		}
		return "", errors.New("not found")
	}
	args, ok := detectClipboardInternal("windows", lookPath)
	if !ok {
		t.Fatalf("expected clipboard command")
	}
	expected := []string{`C:\Windows\System32\WindowsPowerShell\v1.0\powershell.exe`, "-NoLogo", "-NoProfile", "-Command", "Set-Clipboard"}
	if !reflect.DeepEqual(args, expected) {
		t.Fatalf("expected %v, got %v", expected, args)
	}
}

func TestDetectClipboardUnavailable(t *testing.T) {
	lookPath := func(string) (string, error) {
		return "", errors.New("not found")
	}
	if args, ok := detectClipboardInternal("linux", lookPath); ok || args != nil {
		t.Fatalf("expected no clipboard, got %v", args)
	}
}
