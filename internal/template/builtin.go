// Copyright (c) 2025 Velian Tech
// SPDX-License-Identifier: AGPL-3.0-or-later

package template

import "github.com/google/uuid"

// builtinTemplates returns the sample catalog seeded on first run.
func builtinTemplates() []*Template {
	return []*Template{
		{
			ID:          uuid.NewString(),
			Title:       "Professional Email",
			Description: "Write a well-structured business email",
			Category:    "business",
			Prompt: `Write a professional email with the following details:

To: {{recipient}}
Subject: {{subject}}
Purpose: {{purpose}}
Tone: {{tone}}

Make sure the email is well structured, polite, and clear.`,
			Variables: []Variable{
				{Name: "recipient", Kind: KindText, Label: "Recipient", Placeholder: "Recipient name", Required: true},
				{Name: "subject", Kind: KindText, Label: "Subject", Placeholder: "Email subject", Required: true},
				{Name: "purpose", Kind: KindTextarea, Label: "Purpose", Placeholder: "Describe the purpose of the email", Required: true},
				{Name: "tone", Kind: KindSelect, Label: "Tone", Options: []string{"Formal", "Semi-formal", "Friendly"}, Required: true},
			},
			IsPublic:   true,
			CreatedBy:  "system",
			UsageCount: 245,
		},
		{
			ID:          uuid.NewString(),
			Title:       "Code Review",
			Description: "Review code systematically",
			Category:    "coding",
			Prompt: `Perform a code review of the following code:

` + "```{{language}}\n{{code}}\n```" + `

Focus on:
- Code quality and best practices
- Performance and optimization
- Security
- Maintainability
- Potential bugs

Give constructive feedback with concrete suggestions.`,
			Variables: []Variable{
				{Name: "language", Kind: KindSelect, Label: "Programming Language", Options: []string{"JavaScript", "Python", "Java", "TypeScript", "Go", "Rust"}, Required: true},
				{Name: "code", Kind: KindTextarea, Label: "Code", Placeholder: "Paste the code to review", Required: true},
			},
			IsPublic:   true,
			CreatedBy:  "system",
			UsageCount: 189,
		},
		{
			ID:          uuid.NewString(),
			Title:       "SWOT Analysis",
			Description: "Run a SWOT analysis for a business",
			Category:    "analysis",
			Prompt: `Perform a SWOT analysis for:

Company/Product: {{subject}}
Industry: {{industry}}
Target Market: {{target_market}}

Analyze:
1. **Strengths**
2. **Weaknesses**
3. **Opportunities**
4. **Threats**

Provide deep insight and actionable recommendations.`,
			Variables: []Variable{
				{Name: "subject", Kind: KindText, Label: "Analysis Subject", Placeholder: "Company or product name", Required: true},
				{Name: "industry", Kind: KindText, Label: "Industry", Placeholder: "Industry sector", Required: true},
				{Name: "target_market", Kind: KindText, Label: "Target Market", Placeholder: "Target market description", Required: false},
			},
			IsPublic:   true,
			CreatedBy:  "system",
			UsageCount: 156,
		},
		{
			ID:          uuid.NewString(),
			Title:       "Creative Story",
			Description: "Write a creative story",
			Category:    "creative",
			Prompt: `Write a creative story with the following elements:

Genre: {{genre}}
Setting: {{setting}}
Main Character: {{main_character}}
Conflict: {{conflict}}
Length: {{length}}

Make the story engaging, with a compelling plot, characters that grow, and a satisfying ending.`,
			Variables: []Variable{
				{Name: "genre", Kind: KindSelect, Label: "Genre", Options: []string{"Fantasy", "Sci-Fi", "Mystery", "Romance", "Thriller", "Drama"}, Required: true},
				{Name: "setting", Kind: KindText, Label: "Setting", Placeholder: "Time and place of the story", Required: true},
				{Name: "main_character", Kind: KindText, Label: "Main Character", Placeholder: "Main character description", Required: true},
				{Name: "conflict", Kind: KindText, Label: "Conflict", Placeholder: "Central conflict of the story", Required: true},
				{Name: "length", Kind: KindSelect, Label: "Length", Options: []string{"Short (500 words)", "Medium (1000 words)", "Long (2000+ words)"}, Required: true},
			},
			IsPublic:   true,
			CreatedBy:  "system",
			UsageCount: 298,
		},
		{
			ID:          uuid.NewString(),
			Title:       "Lesson Plan",
			Description: "Build a structured lesson plan",
			Category:    "education",
			Prompt: `Create a lesson plan with the following details:

Subject: {{subject}}
Grade Level: {{grade_level}}
Duration: {{duration}}
Topic: {{topic}}
Learning Objectives: {{objectives}}

Structure:
1. **Opening** ({{opening_time}} minutes)
2. **Main Activity** ({{main_time}} minutes)
3. **Closing** ({{closing_time}} minutes)

Include teaching methods, materials used, and an evaluation.`,
			Variables: []Variable{
				{Name: "subject", Kind: KindText, Label: "Subject", Placeholder: "Subject name", Required: true},
				{Name: "grade_level", Kind: KindText, Label: "Grade Level", Placeholder: "Class or level", Required: true},
				{Name: "duration", Kind: KindNumber, Label: "Duration (minutes)", Placeholder: "90", Required: true},
				{Name: "topic", Kind: KindText, Label: "Topic", Placeholder: "Lesson topic", Required: true},
				{Name: "objectives", Kind: KindTextarea, Label: "Learning Objectives", Placeholder: "Goals to achieve", Required: true},
				{Name: "opening_time", Kind: KindNumber, Label: "Opening Time", Placeholder: "10", Required: true},
				{Name: "main_time", Kind: KindNumber, Label: "Main Activity Time", Placeholder: "70", Required: true},
				{Name: "closing_time", Kind: KindNumber, Label: "Closing Time", Placeholder: "10", Required: true},
			},
			IsPublic:   true,
			CreatedBy:  "system",
			UsageCount: 134,
		},
	}
}
