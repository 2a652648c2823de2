package platform

import _ "time/tzdata"
