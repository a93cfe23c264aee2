package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codelens-dev/codelens-mcp/pkg/types"
)

func TestRegistry(t *testing.T) {
	reg := NewDefaultRegistry()

	assert.Equal(t, []string{"go", "javascript", "python", "typescript"}, reg.Languages())

	ext, err := reg.For("typescript")
	require.NoError(t, err)
	assert.Equal(t, "typescript", ext.Language())

	_, err = reg.For("cobol")
	assert.ErrorIs(t, err, types.ErrNoExtractor)
}

func TestRegistryReplace(t *testing.T) {
	reg := NewRegistry()
	reg.Register(NewGoExtractor())
	reg.Register(NewGoExtractor())
	assert.Equal(t, []string{"go"}, reg.Languages())
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"main.go", "go"},
		{"src/app.ts", "typescript"},
		{"src/App.TSX", "typescript"},
		{"lib/util.js", "javascript"},
		{"scripts/run.py", "python"},
		{"README.md", ""},
		{"Makefile", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectLanguage(tt.path), tt.path)
	}
}

func TestGoExtractor(t *testing.T) {
	src := `package auth

import (
	"errors"
	"time"
)

import "fmt"

// Session tracks one login.
type Session struct {
	Token   string
	Expires time.Time
}

func NewSession(token string) (*Session, error) {
	if token == "" {
		return nil, errors.New("empty token")
	}
	return &Session{Token: token}, nil
}

func (s *Session) Valid(now time.Time) bool {
	if s.Token == "" || now.After(s.Expires) {
		return false
	}
	return true
}

func internalHelper() {
	fmt.Println("helper")
}
`
	result, err := NewGoExtractor().Extract([]byte(src))
	require.NoError(t, err)

	require.Len(t, result.Functions, 3)
	assert.Equal(t, "NewSession", result.Functions[0].Name)
	assert.True(t, result.Functions[0].IsExported)
	assert.False(t, result.Functions[2].IsExported)
	assert.Greater(t, result.Functions[0].EndLine, result.Functions[0].StartLine)

	require.Len(t, result.Classes, 1)
	assert.Equal(t, "Session", result.Classes[0].Name)
	assert.Equal(t, []string{"Token", "Expires"}, result.Classes[0].Properties)
	assert.Equal(t, []string{"Valid"}, result.Classes[0].Methods)

	assert.ElementsMatch(t, []string{"errors", "time", "fmt"}, result.Imports)
	assert.Contains(t, result.Exports, "NewSession")
	assert.Contains(t, result.Exports, "Session")
	assert.NotContains(t, result.Exports, "internalHelper")

	assert.Greater(t, result.Complexity, 1)
}

func TestTypeScriptExtractor(t *testing.T) {
	src := `import { User } from './models';
import axios from 'axios';

export interface AuthResult {
    ok: boolean;
}

export class AuthService extends BaseService {
    private retries: number = 3;

    async authenticate(user: User): Promise<AuthResult> {
        if (!user) {
            return { ok: false };
        }
        return { ok: true };
    }

    reset(): void {
        this.retries = 3;
    }
}

export function parseToken(raw: string): string {
    return raw.trim();
}

const normalize = (input: string) => input.toLowerCase();
`
	result, err := NewTypeScriptExtractor().Extract([]byte(src))
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"./models", "axios"}, result.Imports)

	require.Len(t, result.Classes, 2)
	var svc types.ClassInfo
	for _, cls := range result.Classes {
		if cls.Name == "AuthService" {
			svc = cls
		}
	}
	require.NotEmpty(t, svc.Name)
	assert.Equal(t, "BaseService", svc.Extends)
	assert.True(t, svc.IsExported)
	assert.ElementsMatch(t, []string{"authenticate", "reset"}, svc.Methods)

	names := make([]string, 0, len(result.Functions))
	for _, fn := range result.Functions {
		names = append(names, fn.Name)
	}
	assert.Contains(t, names, "parseToken")
	assert.Contains(t, names, "normalize")
	assert.NotContains(t, names, "authenticate")

	assert.Contains(t, result.Exports, "AuthService")
	assert.Contains(t, result.Exports, "parseToken")
	assert.Contains(t, result.Exports, "AuthResult")
}

func TestJavaScriptExtractorNoInterfaces(t *testing.T) {
	src := `const fs = require('fs');

function readConfig(path) {
    return fs.readFileSync(path);
}

async function loadAll(paths) {
    for (const p of paths) {
        readConfig(p);
    }
}
`
	result, err := NewJavaScriptExtractor().Extract([]byte(src))
	require.NoError(t, err)

	require.Len(t, result.Functions, 2)
	assert.Equal(t, "readConfig", result.Functions[0].Name)
	assert.True(t, result.Functions[1].IsAsync)
	assert.Contains(t, result.Imports, "fs")
	assert.Empty(t, result.Classes)
}

func TestPythonExtractor(t *testing.T) {
	src := `import os
from datetime import timedelta

RETRY_LIMIT = 5

class TokenStore:
    def __init__(self, path):
        self.path = path

    def load(self):
        if not os.path.exists(self.path):
            return None
        return open(self.path).read()

def expires_in(seconds):
    return timedelta(seconds=seconds)

async def refresh(store):
    return store.load()

def _private_helper():
    pass
`
	result, err := NewPythonExtractor().Extract([]byte(src))
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"os", "datetime"}, result.Imports)

	require.Len(t, result.Classes, 1)
	cls := result.Classes[0]
	assert.Equal(t, "TokenStore", cls.Name)
	assert.Equal(t, []string{"__init__", "load"}, cls.Methods)
	assert.Greater(t, cls.EndLine, cls.StartLine)

	var topLevel []string
	for _, fn := range result.Functions {
		if fn.IsExported {
			topLevel = append(topLevel, fn.Name)
		}
	}
	assert.ElementsMatch(t, []string{"expires_in", "refresh"}, topLevel)

	assert.Contains(t, result.Exports, "RETRY_LIMIT")
	assert.NotContains(t, result.Exports, "_private_helper")
}

func TestPythonAsyncDetection(t *testing.T) {
	result, err := NewPythonExtractor().Extract([]byte("async def fetch():\n    pass\n"))
	require.NoError(t, err)
	require.Len(t, result.Functions, 1)
	assert.True(t, result.Functions[0].IsAsync)
}

func TestComplexityScoring(t *testing.T) {
	flat := []string{"x = 1", "y = 2"}
	assert.Equal(t, 1, scoreComplexity(flat, 1, len(flat)))

	branchy := []string{
		"if a {",
		"} else if b && c {",
		"for i := range xs {",
		"}",
		"}",
	}
	score := scoreComplexity(branchy, 1, len(branchy))
	assert.Greater(t, score, 3)
}

func TestSplitParams(t *testing.T) {
	assert.Nil(t, splitParams(""))
	assert.Equal(t, []string{"a int", "b string"}, splitParams("a int, b string"))
	assert.Equal(t, []string{"m map[string, int]", "x T"}, splitParams("m map[string, int], x T"))
}

func TestBraceSpanUnclosed(t *testing.T) {
	lines := []string{"func f() {", "  if x {", "}"}
	assert.Equal(t, len(lines), braceSpan(lines, 1))
}
