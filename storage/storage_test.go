package storage

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectURL(t *testing.T) {
	client := &Client{cfg: Config{Endpoint: "localhost", Port: 9000}}
	assert.Equal(t,
		"http://localhost:9000/conecta-projects/abc.jpg",
		client.objectURL(BucketProjects, "abc.jpg"))

	client = &Client{cfg: Config{Endpoint: "files.example.edu", Port: 443, UseSSL: true}}
	assert.Equal(t,
		"https://files.example.edu:443/conecta-proposals/doc.pdf",
		client.objectURL(BucketProposals, "doc.pdf"))
}

func TestParseObjectURL(t *testing.T) {
	bucket, key, ok := parseObjectURL("http://localhost:9000/conecta-projects/abc-123.jpg")
	require.True(t, ok)
	assert.Equal(t, "conecta-projects", bucket)
	assert.Equal(t, "abc-123.jpg", key)

	// nested keys keep their full path
	bucket, key, ok = parseObjectURL("http://localhost:9000/conecta-proposals/2026/doc.pdf")
	require.True(t, ok)
	assert.Equal(t, "conecta-proposals", bucket)
	assert.Equal(t, "2026/doc.pdf", key)

	for _, bad := range []string{"", "http://localhost:9000/", "http://localhost:9000/onlybucket", "::bad::"} {
		_, _, ok := parseObjectURL(bad)
		assert.False(t, ok, "expected %q to be rejected", bad)
	}
}

func TestPublicReadPolicy(t *testing.T) {
	raw := publicReadPolicy("conecta-projects")

	var policy struct {
		Version   string
		Statement []struct {
			Effect   string
			Action   []string
			Resource []string
		}
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &policy))
	require.Len(t, policy.Statement, 1)
	assert.Equal(t, "Allow", policy.Statement[0].Effect)
	assert.Contains(t, policy.Statement[0].Action, "s3:GetObject")
	assert.Contains(t, policy.Statement[0].Resource, "arn:aws:s3:::conecta-projects/*")
}
