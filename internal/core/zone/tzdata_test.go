package zone

import _ "time/tzdata"
