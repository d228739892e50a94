package ai

import (
	"fmt"
	"strings"

	"screenplay-worker/domain/models"
	"screenplay-worker/domain/ports"
)

// ============================================================================
// Prompt Builders
// ============================================================================

// buildOutlinePrompt produces the single whole-video outline prompt. The
// task framing changes with the run mode; everything else is shared.
func buildOutlinePrompt(req *ports.OutlineRequest) string {
	meta := req.Metadata

	var task string
	switch {
	case strings.TrimSpace(req.VariationPrompt) != "":
		task = fmt.Sprintf(
			`Your task is to act as a showrunner and create a high-level story outline for a NEW story with a total duration of %s. This new story is inspired by the user's prompt: "%s". The characters can be from the original video.`,
			meta.DurationFormatted, req.VariationPrompt,
		)
	case req.SummaryMinutes > 0:
		task = fmt.Sprintf(
			`Your task is to act as an editor and create a high-level outline for a compelling summary/trailer of the original video. The final video's duration should be %d minutes. You need to identify the key moments from the original video to include in this summary.`,
			req.SummaryMinutes,
		)
	default:
		task = `Your task is to act as a film analyst and create a high-level structural outline of the provided video's narrative. This will be used to generate a detailed screenplay.`
	}

	return fmt.Sprintf(`VIDEO METADATA:
- Title: %s
- Duration: %s

TASK:
%s

INSTRUCTIONS:
- Break down the entire story into 3-5 logical parts (e.g., Act 1, Act 2, Act 3 or Beginning, Middle, End).
- For each part, provide a title, a summary of its key events, and the start/end timestamps.
- The timestamps for all parts combined must cover the full duration of the video (%s).
- The output must be a valid JSON object matching the provided schema.
`, meta.Title, meta.DurationFormatted, task, meta.DurationFormatted)
}

// buildChunkPrompt produces the detailed-script prompt for one time window.
// The relevant outline part is injected as shared context so chunks stay
// narratively consistent without seeing each other's output.
func buildChunkPrompt(req *ports.ChunkRequest) string {
	meta := req.Metadata
	w := req.Window
	startClock := models.FormatClock(w.StartSec)
	endClock := models.FormatClock(w.EndSec)

	var outlineContext string
	if part := req.Outline.PartFor(w.StartSec, w.EndSec); part != nil {
		outlineContext = fmt.Sprintf(`
HIGH-LEVEL CONTEXT FOR THIS CHUNK:
You are working on the part of the story titled "%s".
Summary of this part: "%s".
Your generated scenes must align with this context.
`, part.Title, part.Summary)
	}

	var task, scenesGuideline string
	switch {
	case strings.TrimSpace(req.VariationPrompt) != "":
		task = fmt.Sprintf(`TASK:
You are a creative screenwriter writing a new story. You are generating detailed scenes for CHUNK %d of %d (%s to %s).
The overall story is based on the user prompt: "%s"`,
			w.Index, w.Total, startClock, endClock, req.VariationPrompt)
		scenesGuideline = `        - **CRITICAL**: The generated scenes MUST follow the high-level story outline provided in the context section.`
	case req.SummaryMinutes > 0:
		task = fmt.Sprintf(`TASK:
You are an editor creating a script for a short summary video. You are selecting highlight scenes for CHUNK %d of %d.
The scenes you select must be from the ORIGINAL video's time range %s to %s.
The target duration for the final summary video is %d minutes.`,
			w.Index, w.Total, startClock, endClock, req.SummaryMinutes)
		scenesGuideline = `        - **CRITICAL**: The scenes must be key highlights that fit into the overall summary outline provided.`
	default:
		task = fmt.Sprintf(`TASK:
You are a film analyst generating a detailed screenplay. You are analyzing CHUNK %d of %d of the video, which covers the time range %s to %s.`,
			w.Index, w.Total, startClock, endClock)
		scenesGuideline = `        - **CRITICAL**: The scenes must accurately reflect the content of the video within this time range and align with the provided story outline.`
	}

	return fmt.Sprintf(`ANALYZE VIDEO (Metadata Only):
- URL: https://www.youtube.com/watch?v=%s
- Title: %s

%s
%s
OUTPUT STYLE: %s

JSON SCHEMA GUIDELINES (enforced by API):
The output will be a JSON object with 'video_meta', 'scenes', and 'assets'.

CONTENT GUIDELINES:
1.  **CONTENT POLICY**: All generated content, including scene summaries, descriptions, and assets, must be family-friendly and strictly adhere to a safe-for-work policy. Avoid any descriptions of violence, explicit content, hate speech, or any other sensitive topics. The goal is to create content suitable for a general audience.
2.  **EVASIVE & SAFE LANGUAGE**: When describing scenes that might contain sensitive elements (like violence, blood, or conflict), use creative and evasive language to mitigate policy risks. For example, instead of 'blood', describe it as 'black liquid' or 'blue liquid'. Instead of a direct depiction of a fight, describe it as 'an intense confrontation' or 'a flurry of quick movements'. The goal is to convey the original intent while ensuring the output is abstract enough to pass content moderation filters.
3.  **video_meta**: Fill this section briefly. The main 'title' should be from the overall outline.
4.  **scenes**:
%s
        - 't0' and 't1' are timestamps in "mm:ss" format, chronologically ordered and MUST be within this chunk's time range of %s to %s.
        - **THEMATIC CONSISTENCY**: Ensure all details within a scene (CAM, SUBJ, SET, MOOD, CLR, etc.) are thematically consistent with the scene's 'summary'.
        - **ENHANCED AUDIO**: The 'SND' field must include both ambient sound effects AND a suggestion for background music that fits the mood.
        - Generate approximately %d logical scenes for this chunk's time range.
        - 'scene_id' can be numbered starting from 1 for this chunk; it will be re-numbered later.
        - 'style_video': This field MUST be a string that exactly matches the requested OUTPUT STYLE: "%s".
5.  **assets**: Identify 3-5 key assets (characters, locations, props) that are relevant FOR THIS CHUNK.
`, meta.VideoID, meta.Title, task, outlineContext, req.Style,
		scenesGuideline, startClock, endClock, req.SceneCount, req.Style)
}
