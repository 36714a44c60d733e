// Package template detects the kind of project in a working directory and
// returns a Descriptor with the Dockerfile, archive ignore patterns and
// default labels used to build it.
//
// Detection order:
//
//  1. A Dockerfile already present in the directory is used as-is (template "docker").
//  2. Embedded templates (data/*.yaml) are tried by ascending priority; a
//     template matches when any of its marker files exists.
//
// A template definition looks like:
//
//	name: node
//	priority: 10
//	markers: [package.json]
//	dockerfile: |
//	  FROM node:lts-alpine
//	  ...
//	ignores: [node_modules/**, "*.log"]
//	labels:
//	  exoframe.type: node
//	prompts:
//	  - label: exoframe.project
//	    message: "Project name:"
//	    default: $basename
//
// Templates with prompts expose an Interactive hook that asks each prompt and
// returns the answers as labels.
package template
