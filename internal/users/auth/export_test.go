// Copyright (c) 2026 Eventos. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

// NewDummyCredential exposes the dummy credential builder to black-box tests.
var NewDummyCredential = newDummyCredential
