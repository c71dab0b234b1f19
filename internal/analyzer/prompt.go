package analyzer

import (
	"fmt"
	"strings"
)

func joinSkills(skills []string, empty string) string {
	if len(skills) == 0 {
		return empty
	}
	return strings.Join(skills, ", ")
}

func analysisPrompt(resumeText, jobDescription string, requiredSkills []string) string {
	return fmt.Sprintf(`You are an expert HR recruiter AI. Analyze the following resume against the job description.

JOB DESCRIPTION:
%s

REQUIRED SKILLS:
%s

RESUME:
%s

Provide your analysis in the following JSON format ONLY (no other text):
{
    "score": <0-100 integer representing match percentage>,
    "summary": "<2-3 sentence summary of the candidate>",
    "skills_matched": ["<list of skills from required that candidate has>"],
    "experience_years": <estimated years of relevant experience>,
    "strengths": ["<3-5 key strengths>"],
    "concerns": ["<any red flags or areas of concern>"]
}
`, jobDescription, joinSkills(requiredSkills, "Not specified"), resumeText)
}

func descriptionPrompt(title string, skills []string) string {
	return fmt.Sprintf(`Generate a professional job description for the following role:

Title: %s
Required Skills: %s

Write a compelling 2-3 paragraph job description that includes:
1. Role overview
2. Key responsibilities
3. Required qualifications

Keep it concise and professional.`, title, joinSkills(skills, "To be determined"))
}

func fallbackDescription(title string, skills []string) string {
	return fmt.Sprintf("We are looking for a talented %s to join our team. The ideal candidate will have experience with %s.",
		title, joinSkills(skills, "relevant technologies"))
}

func shortDescription(title string) string {
	return fmt.Sprintf("We are looking for a talented %s to join our team.", title)
}
