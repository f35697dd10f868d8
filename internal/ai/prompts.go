package ai

const (
	// AI Model configuration
	geminiModel      = "gemini-2.5-flash"
	aiTemperature    = 0.1
	responseMIMEType = "application/json"

	// Minimum similarity for fuzzy ink name matching
	inkMatchThreshold = 0.75
)

// ParseRoundPrompt asks the model for the games of one Lorcana round.
const ParseRoundPrompt = `Analyze this Disney Lorcana match result screenshot.
    It shows one round (best of three, or more games in casual play) against a single opponent.

    For EVERY game of the round, in the order they were played, extract:
    - result: "win", "loss" or "draw" from the perspective of the player who took the screenshot
    - on_the_play: true if that player went first in the game, false if they went second

    Also extract the opponent's ink colors if visible (Amber, Amethyst, Emerald, Ruby, Sapphire, Steel; at most two).

    RULES:
    - Do not invent games that are not shown
    - If the play order of a game is not visible, use false
    - If the opponent's inks are not visible, return an empty array

    Return a JSON object with these exact keys:
    "games" (array of objects with "result" (string) and "on_the_play" (bool)),
    "opponent_ink_colors" (array of strings).`
